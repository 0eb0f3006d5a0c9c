package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags of s. The returned map is keyed by
// lower-cased field name and is nil when s is valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
