package chi

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()

	isbn10 = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13 = regexp.MustCompile(`^\d{13}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("isbn", validateISBN)
	return v
}

// validateISBN accepts 10 or 13 digit ISBNs, ignoring dashes and spaces
func validateISBN(fl validator.FieldLevel) bool {
	isbn := strings.NewReplacer("-", "", " ", "").Replace(fl.Field().String())
	return isbn10.MatchString(isbn) || isbn13.MatchString(isbn)
}

func validateStruct(s any) []fieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []fieldError{{Message: err.Error()}}
	}

	errs := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "isbn":
			message = fmt.Sprintf("%s must be a valid ISBN (10 or 13 digits)", field)
		case "datetime":
			message = fmt.Sprintf("%s must be a YYYY-MM-DD date", field)
		case "oneof":
			message = fmt.Sprintf("%s must be one of %s", field, fe.Param())
		case "unique":
			message = fmt.Sprintf("%s must not repeat values", field)
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		errs = append(errs, fieldError{Field: field, Message: message, Kind: fe.Tag()})
	}
	return errs
}
