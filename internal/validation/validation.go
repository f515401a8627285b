// Package validation checks inbound payloads against their declared
// constraints and reports every field-level violation, not just the first.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainerrors "lendcore.backend/internal/domain/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report violations under the wire name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	// datestring: value must parse to a calendar date
	_ = v.RegisterValidation("datestring", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// dateLayouts are the accepted calendar date formats, most specific first
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a date string in any accepted layout
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// Validate checks a schema struct and returns an AppError carrying a
// message for every violated field. Pure function of its input.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domainerrors.BadRequest(err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return domainerrors.Validation(fields)
}

// BindJSON binds a JSON body and validates it
func BindJSON(c *gin.Context, s interface{}) error {
	if err := c.ShouldBindJSON(s); err != nil {
		return domainerrors.BadRequest(err.Error())
	}
	return Validate(s)
}

// BindQuery binds query parameters (numeric strings are coerced) and validates
func BindQuery(c *gin.Context, s interface{}) error {
	if err := c.ShouldBindQuery(s); err != nil {
		return domainerrors.BadRequest(err.Error())
	}
	return Validate(s)
}

// BindForm binds multipart/urlencoded form fields and validates
func BindForm(c *gin.Context, s interface{}) error {
	if err := c.ShouldBind(s); err != nil {
		return domainerrors.BadRequest(err.Error())
	}
	return Validate(s)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "invalid email address"
	case "url":
		return fmt.Sprintf("invalid URL for %s", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "datestring":
		return fmt.Sprintf("invalid %s", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
