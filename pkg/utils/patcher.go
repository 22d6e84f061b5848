package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	apperrors "asset-system/pkg/errors"

	"github.com/aarondl/null/v8"
)

// DateLayout is the wire format of date-only fields.
const DateLayout = "2006-01-02"

// ApplyPatch copies onto entity every field of patch whose JSON key is
// present in rawBody. Fields are matched by Go name. A key sent as null
// clears a pointer field and is rejected for a value field. Date strings
// are parsed into time fields. The JSON keys
// that were applied are returned.
func ApplyPatch(entity interface{}, patch interface{}, rawBody []byte) ([]string, error) {
	var sentFields map[string]json.RawMessage
	if err := json.Unmarshal(rawBody, &sentFields); err != nil {
		return nil, apperrors.Validationf("payload is not a JSON object")
	}

	entityValue := reflect.ValueOf(entity)
	if entityValue.Kind() != reflect.Ptr || entityValue.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("patch target must be a pointer to struct, got %T", entity)
	}
	entityValue = entityValue.Elem()

	patchValue := reflect.ValueOf(patch)
	if patchValue.Kind() == reflect.Ptr {
		patchValue = patchValue.Elem()
	}

	applied := make([]string, 0, len(sentFields))
	for i := 0; i < patchValue.NumField(); i++ {
		patchFieldType := patchValue.Type().Field(i)
		jsonName := strings.Split(patchFieldType.Tag.Get("json"), ",")[0]
		if jsonName == "" || jsonName == "-" {
			continue
		}
		if _, sent := sentFields[jsonName]; !sent {
			continue
		}

		target := entityValue.FieldByName(patchFieldType.Name)
		if !target.IsValid() || !target.CanSet() {
			continue
		}

		val, valid := unwrapNullable(patchValue.Field(i))
		if !valid {
			if target.Kind() != reflect.Ptr {
				return nil, apperrors.Validationf("field '%s' cannot be null", jsonName)
			}
			target.Set(reflect.Zero(target.Type()))
			applied = append(applied, jsonName)
			continue
		}

		if err := assign(target, val); err != nil {
			return nil, fmt.Errorf("field '%s': %w", jsonName, err)
		}
		applied = append(applied, jsonName)
	}
	return applied, nil
}

func unwrapNullable(field reflect.Value) (reflect.Value, bool) {
	switch v := field.Interface().(type) {
	case null.String:
		return reflect.ValueOf(v.String), v.Valid
	case null.Int:
		return reflect.ValueOf(v.Int), v.Valid
	case null.Int64:
		return reflect.ValueOf(v.Int64), v.Valid
	case null.Uint64:
		return reflect.ValueOf(v.Uint64), v.Valid
	case null.Time:
		return reflect.ValueOf(v.Time), v.Valid
	case null.Float64:
		return reflect.ValueOf(v.Float64), v.Valid
	case null.Bool:
		return reflect.ValueOf(v.Bool), v.Valid
	}
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return reflect.Value{}, false
		}
		return field.Elem(), true
	}
	return field, true
}

var timeType = reflect.TypeOf(time.Time{})

func assign(target reflect.Value, val reflect.Value) error {
	if val.Kind() == reflect.String && (target.Type() == timeType || target.Type() == reflect.PointerTo(timeType)) {
		parsed, err := time.Parse(DateLayout, val.String())
		if err != nil {
			return apperrors.Validationf("'%s' is not a date in %s format", val.String(), DateLayout)
		}
		val = reflect.ValueOf(parsed)
	}
	if target.Kind() == reflect.Ptr {
		elemType := target.Type().Elem()
		if !compatible(val.Type(), elemType) {
			return fmt.Errorf("cannot assign %s to %s", val.Type(), target.Type())
		}
		p := reflect.New(elemType)
		p.Elem().Set(val.Convert(elemType))
		target.Set(p)
		return nil
	}
	if !compatible(val.Type(), target.Type()) {
		return fmt.Errorf("cannot assign %s to %s", val.Type(), target.Type())
	}
	target.Set(val.Convert(target.Type()))
	return nil
}

// compatible is ConvertibleTo without the integer-to-rune string conversion.
func compatible(from, to reflect.Type) bool {
	if to.Kind() == reflect.String && from.Kind() != reflect.String {
		return false
	}
	return from.ConvertibleTo(to)
}
