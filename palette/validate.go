package palette

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/meikuraledutech/flow"
)

// ErrInvalidTemplate is returned for templates that fail validation.
var ErrInvalidTemplate = errors.New("palette: invalid template")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return flow.Category(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("palette: register category validation: %v", err))
	}
	// Report field names as they appear in the template files.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks that a template has the fields the engine needs to
// instantiate it.
func Validate(t flow.Template) error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	id := t.ID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Errorf("%w %s: %s", ErrInvalidTemplate, id, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "category":
		return fmt.Sprintf("%s: unknown category %q", fe.Namespace(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}
