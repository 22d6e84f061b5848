package customvalidator

import (
	"reflect"
	"strings"

	"asset-system/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers the asset rules and teaches the
// validator to look inside null.* wrappers.
func RegisterCustomValidations(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(nullValuer, null.String{}, null.Int{}, null.Int64{}, null.Uint64{}, null.Float64{}, null.Time{}, null.Bool{})

	if err := v.RegisterValidation("asset_category", isAssetCategory); err != nil {
		return err
	}
	if err := v.RegisterValidation("asset_status", isAssetStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("notblank", isNotBlank); err != nil {
		return err
	}
	return nil
}

func isAssetCategory(fl validator.FieldLevel) bool {
	return constants.IsValidCategory(fl.Field().String())
}

func isAssetStatus(fl validator.FieldLevel) bool {
	return constants.IsValidAssetStatus(fl.Field().String())
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// nullValuer exposes the wrapped value of a valid null.* field and nil
// otherwise, so `omitempty` skips absent values.
func nullValuer(field reflect.Value) interface{} {
	switch v := field.Interface().(type) {
	case null.String:
		if v.Valid {
			return v.String
		}
	case null.Int:
		if v.Valid {
			return v.Int
		}
	case null.Int64:
		if v.Valid {
			return v.Int64
		}
	case null.Uint64:
		if v.Valid {
			return v.Uint64
		}
	case null.Float64:
		if v.Valid {
			return v.Float64
		}
	case null.Time:
		if v.Valid {
			return v.Time
		}
	case null.Bool:
		if v.Valid {
			return v.Bool
		}
	}
	return nil
}
