package models

import (
	"database/sql/driver"
	"reflect"
	"testing"
)

func TestStringSlice_Value(t *testing.T) {
	tests := []struct {
		name    string
		s       StringSlice
		wantVal driver.Value
	}{
		{name: "nil slice", s: nil, wantVal: "[]"},
		{name: "empty slice", s: StringSlice{}, wantVal: "[]"},
		{name: "slice with multiple elements", s: StringSlice{"apple", "banana"}, wantVal: `["apple","banana"]`},
		{name: "element containing a delimiter", s: StringSlice{"part1|||part2"}, wantVal: `["part1|||part2"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.Value()
			if err != nil {
				t.Fatalf("StringSlice.Value() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.wantVal) {
				t.Errorf("StringSlice.Value() = %v, want %v", got, tt.wantVal)
			}
		})
	}
}

func TestStringSlice_Scan(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    StringSlice
		wantErr bool
	}{
		{name: "nil input", input: nil, want: StringSlice{}},
		{name: "empty string", input: "", want: StringSlice{}},
		{name: "json null", input: "null", want: StringSlice{}},
		{name: "string input", input: `["a","b"]`, want: StringSlice{"a", "b"}},
		{name: "bytes input", input: []byte(`["<b>x</b>"]`), want: StringSlice{"<b>x</b>"}},
		{name: "unsupported type", input: 42, wantErr: true},
		{name: "malformed json", input: `["a"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			err := s.Scan(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("StringSlice.Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(s, tt.want) {
				t.Errorf("StringSlice.Scan() = %v, want %v", s, tt.want)
			}
		})
	}
}

func TestIntSlice_ValueAndScan(t *testing.T) {
	v, err := IntSlice{0, 2}.Value()
	if err != nil {
		t.Fatalf("IntSlice.Value() error = %v", err)
	}
	if v != "[0,2]" {
		t.Errorf("IntSlice.Value() = %v, want [0,2]", v)
	}

	var s IntSlice
	if err := s.Scan(v); err != nil {
		t.Fatalf("IntSlice.Scan() error = %v", err)
	}
	if !reflect.DeepEqual(s, IntSlice{0, 2}) {
		t.Errorf("IntSlice.Scan() = %v, want [0 2]", s)
	}

	if err := s.Scan(nil); err != nil || len(s) != 0 {
		t.Errorf("IntSlice.Scan(nil) = %v, %v; want empty slice", s, err)
	}
}
