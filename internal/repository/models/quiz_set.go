package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	data, err := scanBytes("StringSlice", value)
	if err != nil {
		return err
	}
	if data == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}

// IntSlice stores a []int as a JSON array in a text column.
type IntSlice []int

// Value implements the driver.Valuer interface
func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal([]int(s))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *IntSlice) Scan(value interface{}) error {
	data, err := scanBytes("IntSlice", value)
	if err != nil {
		return err
	}
	if data == nil {
		*s = IntSlice{}
		return nil
	}
	return json.Unmarshal(data, (*[]int)(s))
}

// scanBytes returns nil for NULL, empty and "null" column values.
func scanBytes(typeName string, value interface{}) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return data, nil
}

// QuizSet is one archived conversion.
type QuizSet struct {
	ID            string         `db:"ID"` // ULID
	FileName      string         `db:"FILE_NAME"`
	Name          string         `db:"NAME"`
	Description   sql.NullString `db:"DESCRIPTION"`
	SourceName    sql.NullString `db:"SOURCE_NAME"`
	SourceHash    string         `db:"SOURCE_HASH"` // sha256 of the source text
	QuestionCount int            `db:"QUESTION_COUNT"`
	CreatedAt     time.Time      `db:"CREATED_AT"`
	UpdatedAt     time.Time      `db:"UPDATED_AT"`
	DeletedAt     sql.NullTime   `db:"DELETED_AT"`
}

func (QuizSet) TableName() string {
	return "quiz_sets"
}

// QuizSetQuestion is one question of an archived quiz set.
type QuizSetQuestion struct {
	ID             string         `db:"ID"` // ULID
	QuizSetID      string         `db:"QUIZ_SET_ID"`
	Position       int            `db:"POSITION"`
	DeclaredID     int            `db:"DECLARED_ID"`
	Question       string         `db:"QUESTION"`
	Options        StringSlice    `db:"OPTIONS"`
	CorrectAnswers IntSlice       `db:"CORRECT_ANSWERS"`
	Multiple       int            `db:"MULTIPLE"` // 0 or 1
	Explanation    sql.NullString `db:"EXPLANATION"`
}

func (QuizSetQuestion) TableName() string {
	return "quiz_set_questions"
}
