package model

import (
	"github.com/origadmin/proto2ts/internal/diagnostic"
)

const (
	// Separator joins the segments of a qualified name.
	Separator = "."
	// BuilderSuffix marks the constructible counterpart of a message.
	BuilderSuffix = "Builder"
)

// Settings are the scope-wide rendering options copied onto every resolved message.
type Settings struct {
	CamelCaseGetSet  bool
	UnderscoreGetSet bool
	Properties       bool
}

// Definition is a symbol a scope exposes for one of its direct children.
type Definition struct {
	Name string
	Type string
}

// ResolvedDocument is the output of name resolution.
type ResolvedDocument struct {
	Package     string
	Root        *ResolvedMessage
	Diagnostics diagnostic.Diagnostics
}

// ResolvedMessage is a message with its fully qualified name, its surviving
// children and its Definitions.
type ResolvedMessage struct {
	Settings

	Name               string
	FullyQualifiedName string
	Fields             []*ResolvedField
	Messages           []*ResolvedMessage
	Enums              []*ResolvedEnum
	Definitions        []Definition
}

// ResolvedEnum is an enum with its fully qualified name.
type ResolvedEnum struct {
	Name               string
	FullyQualifiedName string
	Values             []EnumValue
}

// ResolvedField is a field whose type has been normalized or scope-qualified.
type ResolvedField struct {
	Name string
	// DeclaredType is the type as written in the input.
	DeclaredType string
	// Type is the type to emit.
	Type string
	Rule Rule
	ID   int
	// Qualified is set when Type was rewritten to a scope-local reference.
	Qualified bool
}
