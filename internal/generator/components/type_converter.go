package components

import (
	"strings"

	"github.com/origadmin/proto2ts/internal/model"
)

const (
	tsString  = "string"
	tsBoolean = "boolean"
	tsBytes   = "ByteBuffer"
	tsNumber  = "number"
)

var scalarTypes = map[string]string{
	"string":   tsString,
	"bool":     tsBoolean,
	"bytes":    tsBytes,
	"double":   tsNumber,
	"float":    tsNumber,
	"int32":    tsNumber,
	"int64":    tsNumber,
	"uint32":   tsNumber,
	"uint64":   tsNumber,
	"sint32":   tsNumber,
	"sint64":   tsNumber,
	"fixed32":  tsNumber,
	"fixed64":  tsNumber,
	"sfixed32": tsNumber,
	"sfixed64": tsNumber,
}

// TypeConverter maps schema scalar keywords to TypeScript type names.
type TypeConverter struct{}

// NewTypeConverter creates a new type converter.
func NewTypeConverter() model.TypeNormalizer {
	return &TypeConverter{}
}

// Normalize returns the output type for a scalar keyword, matched case-insensitively.
// Anything else is a message or enum identifier and is returned unchanged.
func (c *TypeConverter) Normalize(declared string) string {
	if mapped, ok := scalarTypes[strings.ToLower(declared)]; ok {
		return mapped
	}
	return declared
}

// ConvertType is the template filter form of TypeConverter.Normalize.
func ConvertType(value string) string {
	return (&TypeConverter{}).Normalize(value)
}
