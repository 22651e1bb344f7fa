package forms

import "Bizonii-Backend/src/models"

// ValidateSchema checks that a form definition is self-consistent. Rules run
// in order and the first violation is returned:
//  1. every choice field has options,
//  2. every other field has keywords,
//  3. every token used in a section names a declared field.
//
// Declared fields that no section references are allowed.
func ValidateSchema(fields []models.DynamicField, sections []models.DocumentSection) error {
	for _, f := range fields {
		if shape, ok := f.Shape().(models.ChoiceShape); ok && len(shape.Options) == 0 {
			return &SchemaError{Reason: NoFieldOptionsProvided, Placeholder: f.Placeholder, Kind: f.Type}
		}
	}

	for _, f := range fields {
		if shape, ok := f.Shape().(models.KeywordShape); ok && len(shape.Keywords) == 0 {
			return &SchemaError{Reason: NoFieldKeywordsProvided, Placeholder: f.Placeholder, Kind: f.Type}
		}
	}

	declared := declaredPlaceholders(fields)
	for _, section := range sections {
		for _, token := range ExtractTokens(section.Text) {
			if _, ok := declared[token]; !ok {
				return &SchemaError{Reason: UnspecifiedField, Placeholder: token}
			}
		}
	}

	return nil
}

// UnreferencedFields lists declared placeholders that no section text uses.
func UnreferencedFields(fields []models.DynamicField, sections []models.DocumentSection) []string {
	used := map[string]struct{}{}
	for _, section := range sections {
		for _, token := range ExtractTokens(section.Text) {
			used[token] = struct{}{}
		}
	}

	var unused []string
	for _, f := range fields {
		if _, ok := used[f.Placeholder]; !ok {
			unused = append(unused, f.Placeholder)
		}
	}
	return unused
}

func declaredPlaceholders(fields []models.DynamicField) map[string]struct{} {
	declared := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		declared[f.Placeholder] = struct{}{}
	}
	return declared
}
