// Package model defines the schema tree read from a ProtoBuf.js JSON description
// and the resolved tree handed to the renderer.
package model

import (
	"encoding/json"
	"fmt"
)

// Rule is the cardinality tag of a field.
type Rule string

const (
	RuleRequired Rule = "required"
	RuleOptional Rule = "optional"
	RuleRepeated Rule = "repeated"
)

// IsKnown reports whether r is one of the three recognized cardinalities.
func (r Rule) IsKnown() bool {
	switch r {
	case RuleRequired, RuleOptional, RuleRepeated:
		return true
	}
	return false
}

// Node is implemented by the three kinds of schema nodes: *Message, *Enum and *Field.
type Node interface {
	schemaNode()
	// NodeName returns the local name of the node.
	NodeName() string
}

// Document is the top level of a schema description.
type Document struct {
	// Package is the declared package, empty when the input omits it.
	Package  string         `json:"package"`
	Syntax   string         `json:"syntax,omitempty"`
	Imports  []string       `json:"imports,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
	Messages []*Message     `json:"messages"`
	Enums    []*Enum        `json:"enums"`
}

// Root returns the unnamed message that holds the top-level messages and enums.
// The returned message shares its children with the document.
func (d *Document) Root() *Message {
	return &Message{
		Messages: d.Messages,
		Enums:    d.Enums,
	}
}

// Message is a (possibly nested) message definition.
type Message struct {
	Name     string           `json:"name"`
	Fields   []*Field         `json:"fields"`
	Enums    []*Enum          `json:"enums"`
	Messages []*Message       `json:"messages"`
	Ref      RefFlag          `json:"ref,omitempty"`
	Options  map[string]any   `json:"options,omitempty"`
	Oneofs   map[string][]int `json:"oneofs,omitempty"`
}

func (*Message) schemaNode() {}

// NodeName returns the message name.
func (m *Message) NodeName() string { return m.Name }

// IsReference reports whether the message only extends another one.
func (m *Message) IsReference() bool { return m.Ref.Set }

// Enum is an enumeration definition.
type Enum struct {
	Name    string         `json:"name"`
	Values  []EnumValue    `json:"values"`
	Options map[string]any `json:"options,omitempty"`
}

func (*Enum) schemaNode() {}

// NodeName returns the enum name.
func (e *Enum) NodeName() string { return e.Name }

// EnumValue is a single named constant of an enum.
type EnumValue struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// Field is a message field.
type Field struct {
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Rule    Rule           `json:"rule"`
	ID      int            `json:"id"`
	Options map[string]any `json:"options,omitempty"`
}

func (*Field) schemaNode() {}

// NodeName returns the field name.
func (f *Field) NodeName() string { return f.Name }

// RefFlag marks an extension-only message. ProtoBuf.js stores the name of the
// extended message in "ref"; a plain boolean is accepted as well.
type RefFlag struct {
	Set    bool
	Target string
}

// UnmarshalJSON accepts a string, a boolean or null.
func (r *RefFlag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*r = RefFlag{}
	case string:
		*r = RefFlag{Set: t != "", Target: t}
	case bool:
		*r = RefFlag{Set: t}
	default:
		return fmt.Errorf("ref must be a string or a boolean, got %T", v)
	}
	return nil
}

// ParseDocument decodes a JSON schema description.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
