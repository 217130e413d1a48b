package util

import (
	"context"
	"reflect"
	"strings"

	"note-ledger/internal/utils/sanitize"

	"github.com/go-playground/validator/v10"
)

// TagNotBlank fails a string that is empty once HTML and whitespace are stripped.
const TagNotBlank = "notblank"

// NewValidator returns a validator with the project's custom tags and JSON
// field names in error messages.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation(TagNotBlank, notBlank)
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return sanitize.Clean(field.String()) != ""
}

// ValidateCtx runs v.StructCtx and returns its error unchanged.
func ValidateCtx(ctx context.Context, v *validator.Validate, req any) error {
	return v.StructCtx(ctx, req)
}
