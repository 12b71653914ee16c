package model

// TypeNormalizer maps a declared field type to the type name emitted in the output.
type TypeNormalizer interface {
	Normalize(declared string) string
}

// Resolver turns a schema document into a resolved tree.
type Resolver interface {
	Resolve(doc *Document) (*ResolvedDocument, error)
}

// Renderer applies a named template to a resolved tree.
type Renderer interface {
	Render(templateName string, data any) ([]byte, error)
}
