package validation

import (
	"errors"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"quiz-automation/internal/domain"

	govalidator "github.com/go-playground/validator/v10"
)

var (
	quizIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	quizFilePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+\.json$`)
)

// Validator provides request validation functionality
type Validator struct {
	validate    *govalidator.Validate
	catalogFile string
}

// NewValidator creates a new validator instance. catalogFile is the name of
// the catalog document, which can never be deleted through the API.
func NewValidator(catalogFile string) *Validator {
	v := govalidator.New()

	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	val := &Validator{validate: v, catalogFile: catalogFile}
	_ = v.RegisterValidation("quiz_id", val.isQuizID)
	_ = v.RegisterValidation("quiz_file", val.isQuizFile)
	return val
}

// Struct validates a request DTO. String fields are expected to be trimmed
// by the caller.
func (v *Validator) Struct(req interface{}) domain.ValidationErrors {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs govalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{
			Field:   "request",
			Code:    domain.CodeValidation,
			Message: err.Error(),
		}}
	}

	var out domain.ValidationErrors
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			out = append(out, domain.NewMissingFieldError(fe.Field()))
			continue
		}
		out = append(out, domain.NewInvalidFormatError(fe.Field(), fe.Value()))
	}
	return out
}

func (v *Validator) isQuizID(fl govalidator.FieldLevel) bool {
	return quizIDPattern.MatchString(fl.Field().String())
}

// isQuizFile accepts a bare "*.json" name that is not the catalog itself.
func (v *Validator) isQuizFile(fl govalidator.FieldLevel) bool {
	name := fl.Field().String()
	if !quizFilePattern.MatchString(name) || name != filepath.Base(name) {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	return name != v.catalogFile
}
