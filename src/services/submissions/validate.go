package submissions

import (
	"reflect"

	"Bizonii-Backend/src/models"
)

// ValidateSubmission checks that every mandatory field of schema has a
// non-empty value in submitted. Missing placeholders are collected and reported
// together. Extra keys and optional fields are ignored.
func ValidateSubmission(schema []models.DynamicField, submitted models.FieldValues) error {
	var missing []string
	for _, field := range schema {
		if !field.Mandatory {
			continue
		}
		value, ok := submitted.Lookup(field.Placeholder)
		if !ok || isEmpty(value) {
			missing = append(missing, field.Placeholder)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Placeholders: missing}
	}
	return nil
}

// isEmpty: null, "" and empty lists/objects. Zero numbers and false are answers,
// unlike plain truthiness, so a mandatory numeric or yes/no field accepts 0 and false.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
