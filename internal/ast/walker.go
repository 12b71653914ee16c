// Package ast walks and resolves the schema tree.
package ast

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/origadmin/proto2ts/internal/diagnostic"
	"github.com/origadmin/proto2ts/internal/model"
)

// VisitFunc is called for every node reached by Walk. scope is the chain of
// enclosing message names, outermost first. Returning false skips the
// children of a message.
type VisitFunc func(node model.Node, scope []string) bool

// Walk traverses msg depth-first: the message itself, then its fields, its
// enums and its nested messages, in declaration order.
func Walk(msg *model.Message, fn VisitFunc) error {
	return walk(msg, nil, fn)
}

func walk(node model.Node, scope []string, fn VisitFunc) error {
	switch n := node.(type) {
	case *model.Message:
		if n == nil || !fn(n, scope) {
			return nil
		}
		inner := scope
		if n.Name != "" {
			inner = append(scope[:len(scope):len(scope)], n.Name)
		}
		for _, f := range n.Fields {
			if err := walk(f, inner, fn); err != nil {
				return err
			}
		}
		for _, e := range n.Enums {
			if err := walk(e, inner, fn); err != nil {
				return err
			}
		}
		for _, m := range n.Messages {
			if err := walk(m, inner, fn); err != nil {
				return err
			}
		}
	case *model.Enum:
		if n != nil {
			fn(n, scope)
		}
	case *model.Field:
		if n != nil {
			fn(n, scope)
		}
	default:
		return fmt.Errorf("unexpected schema node %T", node)
	}
	return nil
}

// Stats counts the nodes of a schema tree.
type Stats struct {
	Messages   int
	References int
	Enums      int
	Fields     int
}

// Inspect runs light structural checks over a document and counts its nodes.
// Problems are reported as warnings; the schema is not fully validated.
func Inspect(doc *model.Document) (Stats, diagnostic.Diagnostics, error) {
	var (
		stats Stats
		diags diagnostic.Diagnostics
	)

	root := doc.Root()
	err := Walk(root, func(node model.Node, scope []string) bool {
		where := strings.Join(scope, model.Separator)
		switch n := node.(type) {
		case *model.Message:
			if n == root {
				return true
			}
			stats.Messages++
			if n.IsReference() {
				stats.References++
			}
			if n.Name == "" {
				diags.AddWarning(diagnostic.CodeMissingName, "message has no name", where, "")
			}
		case *model.Enum:
			stats.Enums++
			if n.Name == "" {
				diags.AddWarning(diagnostic.CodeMissingName, "enum has no name", where, "")
			}
		case *model.Field:
			stats.Fields++
			if n.Name == "" {
				diags.AddWarning(diagnostic.CodeMissingName, "field has no name", where, "")
			}
			if n.Type == "" {
				diags.AddWarning(diagnostic.CodeMissingType, "field has no type", where, n.Name)
			}
			if !n.Rule.IsKnown() {
				diags.AddWarning(diagnostic.CodeUnknownRule,
					fmt.Sprintf("unknown rule %q, no cardinality marker will be emitted", n.Rule), where, n.Name)
			}
		}
		return true
	})
	if err != nil {
		return stats, diags, err
	}

	slog.Debug("Inspected schema",
		"messages", stats.Messages,
		"references", stats.References,
		"enums", stats.Enums,
		"fields", stats.Fields,
		"warnings", len(diags.Warnings))
	return stats, diags, nil
}
