package diary

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/guncedev/gunce/internal/common"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields under their wire names so a ValidationError carries
	// "title", not "Title"
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("sentiment", validateSentiment); err != nil {
		panic(err)
	}
	return v
}

func validateSentiment(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return Sentiment(fl.Field().String()).Valid()
}

// Validate applies defaults and checks the entry against the model rules.
// The first offending field is reported as common.ValidationError.
func (e *Entry) Validate() error {
	e.ApplyDefaults()

	if err := validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &common.ValidationError{Field: verrs[0].Field()}
		}
		return err
	}
	return nil
}

// Validate checks a tag definition.
func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &common.ValidationError{Field: "name"}
	}
	return nil
}
