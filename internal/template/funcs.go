package template

import (
	"fmt"
	"text/template"

	"github.com/origadmin/proto2ts/internal/generator/components"
)

// FuncMap returns the filters available to templates.
func FuncMap() template.FuncMap {
	formatter := components.NewTypeFormatter()
	return template.FuncMap{
		"firstLetterInUpperCase": components.FirstLetterInUpperCase,
		"firstLetterInLowerCase": components.FirstLetterInLowerCase,
		"camelCase":              components.CamelCase,
		"avoidReservedWords":     components.AvoidReservedWords,
		"typeName":               components.GuardTypeName,
		"convertType":            components.ConvertType,
		"optionalFieldDeclaration": func(rule any) string {
			return components.OptionalFieldDeclaration(fmt.Sprint(rule))
		},
		"repeatedType": func(rule any) string {
			return components.RepeatedType(fmt.Sprint(rule))
		},
		"propertyName": formatter.PropertyName,
		"fieldType":    formatter.Format,
	}
}
