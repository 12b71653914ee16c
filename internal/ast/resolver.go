package ast

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/origadmin/proto2ts/internal/diagnostic"
	"github.com/origadmin/proto2ts/internal/generator/components"
	"github.com/origadmin/proto2ts/internal/model"
)

// ErrDuplicateName is returned in strict mode when two siblings of one scope share a name.
var ErrDuplicateName = errors.New("duplicate name in scope")

// DefaultSettings mirrors the command line defaults.
var DefaultSettings = model.Settings{
	CamelCaseGetSet:  true,
	UnderscoreGetSet: false,
	Properties:       true,
}

// Option configures a NameResolver.
type Option func(*NameResolver)

// WithSettings sets the rendering settings copied onto every resolved message.
func WithSettings(s model.Settings) Option {
	return func(r *NameResolver) { r.settings = s }
}

// WithNormalizer replaces the scalar type normalizer.
func WithNormalizer(n model.TypeNormalizer) Option {
	return func(r *NameResolver) { r.normalizer = n }
}

// WithStrict makes duplicate sibling names an error instead of a warning.
func WithStrict(strict bool) Option {
	return func(r *NameResolver) { r.strict = strict }
}

// NameResolver assigns fully qualified names, drops reference messages,
// qualifies scope-local field types and collects each scope's Definitions.
// It never modifies its input.
type NameResolver struct {
	settings   model.Settings
	normalizer model.TypeNormalizer
	strict     bool
}

// NewResolver creates a NameResolver with DefaultSettings and the scalar type table.
func NewResolver(opts ...Option) *NameResolver {
	r := &NameResolver{
		settings:   DefaultSettings,
		normalizer: components.NewTypeConverter(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves doc using its declared package as the root prefix.
func (r *NameResolver) Resolve(doc *model.Document) (*model.ResolvedDocument, error) {
	return r.ResolveAs(doc, doc.Package)
}

// ResolveAs resolves doc under the given root package name. In strict mode
// every duplicate name is collected before the run fails.
func (r *NameResolver) ResolveAs(doc *model.Document, pkg string) (*model.ResolvedDocument, error) {
	out := &model.ResolvedDocument{Package: pkg}
	out.Root = r.resolve(doc.Root(), pkg, "", &out.Diagnostics)
	if err := out.Diagnostics.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDuplicateName, err)
	}
	return out, nil
}

// resolve handles one scope. Children are fully resolved before the scope's
// own Definitions are assembled.
func (r *NameResolver) resolve(msg *model.Message, prefix, segment string, diags *diagnostic.Diagnostics) *model.ResolvedMessage {
	out := &model.ResolvedMessage{
		Settings:           r.settings,
		Name:               msg.Name,
		FullyQualifiedName: prefix + localSegment(segment),
	}
	pending := newPendingTable()

	childSegment := model.Separator + msg.Name
	for _, child := range msg.Messages {
		if child == nil {
			continue
		}
		if child.IsReference() {
			slog.Debug("Skipping reference message", "scope", out.FullyQualifiedName, "name", child.Name, "ref", child.Ref.Target)
			continue
		}
		r.register(pending, child.Name, model.BuilderSuffix, out.FullyQualifiedName, diags)
		out.Messages = append(out.Messages, r.resolve(child, out.FullyQualifiedName, childSegment, diags))
	}

	enumScope := out.FullyQualifiedName
	if msg.Name != "" {
		enumScope += model.Separator + msg.Name
	}
	for _, e := range msg.Enums {
		if e == nil {
			continue
		}
		r.register(pending, e.Name, "", out.FullyQualifiedName, diags)
		out.Enums = append(out.Enums, &model.ResolvedEnum{
			Name:               e.Name,
			FullyQualifiedName: enumScope,
			Values:             slices.Clone(e.Values),
		})
	}

	for _, f := range msg.Fields {
		if f == nil {
			continue
		}
		field := &model.ResolvedField{
			Name:         f.Name,
			DeclaredType: f.Type,
			Rule:         f.Rule,
			ID:           f.ID,
		}
		if pending.has(f.Type) {
			field.Type = qualify(msg.Name, f.Type)
			field.Qualified = true
		} else {
			field.Type = r.normalizer.Normalize(f.Type)
		}
		out.Fields = append(out.Fields, field)
	}

	out.Definitions = make([]model.Definition, 0, len(pending.order))
	for _, name := range pending.order {
		out.Definitions = append(out.Definitions, model.Definition{
			Name: name,
			Type: qualify(msg.Name, name) + pending.kinds[name],
		})
	}

	slog.Debug("Resolved scope",
		"name", out.FullyQualifiedName,
		"messages", len(out.Messages),
		"enums", len(out.Enums),
		"fields", len(out.Fields),
		"definitions", len(out.Definitions))
	return out
}

// register adds a pending Definition. A repeated name keeps its first position
// and takes the latest kind. In strict mode the repeat is recorded as an error.
func (r *NameResolver) register(p *pendingTable, name, kind, scope string, diags *diagnostic.Diagnostics) {
	if p.has(name) {
		if r.strict {
			diags.AddError(diagnostic.CodeDuplicateName, "name is defined more than once", scope, name)
		} else {
			slog.Warn("Duplicate name in scope, the later definition wins", "scope", scope, "name", name)
			diags.AddWarning(diagnostic.CodeDuplicateName, "name is defined more than once, the later definition wins", scope, name)
		}
	}
	p.set(name, kind)
}

// localSegment drops a segment that is a bare separator. This only happens
// when the unnamed root seeds its children.
func localSegment(segment string) string {
	if segment == model.Separator {
		return ""
	}
	return segment
}

// qualify prefixes name with the local name of the enclosing scope.
func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + model.Separator + name
}

type pendingTable struct {
	order []string
	kinds map[string]string
}

func newPendingTable() *pendingTable {
	return &pendingTable{kinds: make(map[string]string)}
}

func (p *pendingTable) has(name string) bool {
	_, ok := p.kinds[name]
	return ok
}

func (p *pendingTable) set(name, kind string) {
	if !p.has(name) {
		p.order = append(p.order, name)
	}
	p.kinds[name] = kind
}
