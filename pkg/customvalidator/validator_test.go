package customvalidator

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Category string      `validate:"required,asset_category"`
	Status   null.String `validate:"omitempty,asset_status"`
	Cost     null.Int64  `validate:"omitempty,gt=0"`
	Note     string      `validate:"notblank"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestAssetRules(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(sample{Category: "COMP", Note: "x"}))
	assert.NoError(t, v.Struct(sample{Category: "OTHERS", Status: null.StringFrom("INACTIVE"), Cost: null.Int64From(5), Note: "x"}))

	assert.Error(t, v.Struct(sample{Category: "PHONE", Note: "x"}))
	assert.Error(t, v.Struct(sample{Category: "COMP", Status: null.StringFrom("BROKEN"), Note: "x"}))
	assert.Error(t, v.Struct(sample{Category: "COMP", Cost: null.Int64From(-3), Note: "x"}))
	assert.Error(t, v.Struct(sample{Category: "COMP", Note: "   "}))
}
