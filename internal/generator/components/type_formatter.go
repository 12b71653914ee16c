package components

import (
	"github.com/origadmin/proto2ts/internal/model"
)

const (
	optionalMarker = "?"
	repeatedMarker = "[]"
)

// OptionalFieldDeclaration returns the optionality marker for an optional field.
func OptionalFieldDeclaration(rule string) string {
	if model.Rule(rule) == model.RuleOptional {
		return optionalMarker
	}
	return ""
}

// RepeatedType returns the sequence marker for a repeated field.
func RepeatedType(rule string) string {
	if model.Rule(rule) == model.RuleRepeated {
		return repeatedMarker
	}
	return ""
}

// TypeFormatter builds the type signature of a resolved field.
type TypeFormatter struct{}

// NewTypeFormatter creates a new TypeFormatter.
func NewTypeFormatter() *TypeFormatter {
	return &TypeFormatter{}
}

// Format returns the guarded field type followed by its sequence marker, e.g. "number[]".
func (f *TypeFormatter) Format(field *model.ResolvedField) string {
	return GuardTypeName(field.Type) + RepeatedType(string(field.Rule))
}

// PropertyName returns the guarded property name followed by its optionality marker, e.g. "name?".
func (f *TypeFormatter) PropertyName(field *model.ResolvedField) string {
	return AvoidReservedWords(field.Name) + OptionalFieldDeclaration(string(field.Rule))
}
