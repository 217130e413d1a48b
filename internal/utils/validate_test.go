package util

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title *string `json:"title,omitempty" validate:"omitempty,notblank,max=10"`
	Name  string  `json:"name" validate:"required,notblank"`
}

func strp(s string) *string { return &s }

func TestNotBlank(t *testing.T) {
	v := NewValidator()
	ctx := context.Background()

	assert.NoError(t, ValidateCtx(ctx, v, sample{Name: "ok"}))
	assert.NoError(t, ValidateCtx(ctx, v, sample{Name: "ok", Title: strp("fine")}))

	err := ValidateCtx(ctx, v, sample{Name: "<b> </b>"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name", verrs[0].Field())
	assert.Equal(t, TagNotBlank, verrs[0].Tag())

	assert.Error(t, ValidateCtx(ctx, v, sample{Name: "ok", Title: strp("   ")}))
	assert.NoError(t, ValidateCtx(ctx, v, sample{Name: "ok", Title: nil}))
}
