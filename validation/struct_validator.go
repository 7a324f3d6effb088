package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/authflow/errors"
)

// shared returns the lazily built validator instance. Building one is
// expensive (struct caching, tag parsing), so the whole module shares it.
var shared = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Error messages should name fields the way the caller spelled them:
	// config structs carry mapstructure tags, API types carry json tags.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"mapstructure", "json"} {
			if name, _, _ := strings.Cut(f.Tag.Get(tag), ","); name != "" && name != "-" {
				return name
			}
		}
		return snake(f.Name)
	})
	return v
})

// Validate checks a struct against its `validate:"..."` tags and collapses
// the result into one Validation error listing every bad field.
func Validate(s any) error {
	err := shared().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation(err.Error())
	}

	problems := make([]FieldError, 0, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		p := FieldError{Field: snake(fe.Field()), Message: describe(fe)}
		problems = append(problems, p)
		parts = append(parts, p.Field+" "+p.Message)
	}

	appErr := errors.Validation(strings.Join(parts, "; "))
	appErr.Details = map[string]any{"fields": problems}
	return appErr
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " characters"
	case "max":
		return "must have at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// snake lowercases CamelCase names the way the wire formats spell them.
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
