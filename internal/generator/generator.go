// Package generator runs a full conversion: it loads a schema description,
// resolves its names, renders the declarations and writes them out.
package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	"github.com/origadmin/proto2ts/internal/ast"
	"github.com/origadmin/proto2ts/internal/config"
	"github.com/origadmin/proto2ts/internal/model"
	"github.com/origadmin/proto2ts/internal/template"
)

// Option configures a Generator.
type Option func(*Generator)

// WithDump writes a dump of every resolved tree to w.
func WithDump(w io.Writer) Option {
	return func(g *Generator) { g.dump = w }
}

// Generator drives one conversion run. It owns its template set, so nothing
// is shared between generators.
type Generator struct {
	config   *config.Config
	resolver *ast.NameResolver
	tmplMgr  *template.Manager
	dump     io.Writer
}

// NewGenerator creates a generator for cfg. Templates are loaded here, so a
// broken template set fails before any input is read.
func NewGenerator(cfg *config.Config, opts ...Option) (*Generator, error) {
	tmplMgr, err := template.NewManager()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	g := &Generator{
		config: cfg,
		resolver: ast.NewResolver(
			ast.WithSettings(cfg.Settings()),
			ast.WithStrict(cfg.Strict),
		),
		tmplMgr: tmplMgr,
	}
	for _, opt := range opts {
		opt(g)
	}

	if cfg.Templates != "" {
		if err := g.tmplMgr.LoadExternalTemplates(cfg.Templates); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
		}
		slog.Info("Loaded external templates", "path", cfg.Templates)
	}
	return g, nil
}

// Load reads and decodes the configured schema file.
func (g *Generator) Load() (*model.Document, error) {
	data, err := os.ReadFile(g.config.File)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	doc, err := model.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDecode, g.config.File, err)
	}
	slog.Debug("Loaded schema", "file", g.config.File, "package", doc.Package)
	return doc, nil
}

// Resolve inspects doc and builds its resolved tree.
func (g *Generator) Resolve(doc *model.Document) (*model.ResolvedDocument, error) {
	stats, diags, err := ast.Inspect(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolve, err)
	}

	pkg := g.config.PackageName(doc.Package)
	resolved, err := g.resolver.ResolveAs(doc, pkg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolve, err)
	}
	resolved.Diagnostics.Merge(diags)

	for _, w := range resolved.Diagnostics.Warnings {
		slog.Warn("Schema warning", "detail", w.String())
	}
	slog.Info("Resolved schema",
		"package", pkg,
		"messages", stats.Messages,
		"references", stats.References,
		"enums", stats.Enums,
		"fields", stats.Fields)

	if g.dump != nil {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		dumper.Fdump(g.dump, resolved)
	}
	return resolved, nil
}

// Render applies the module template to a resolved tree.
func (g *Generator) Render(resolved *model.ResolvedDocument) ([]byte, error) {
	out, err := g.tmplMgr.Render(template.ModuleTemplate, resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return out, nil
}

// Generate loads, resolves and renders the configured schema.
func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	doc, err := g.Load()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, err := g.Resolve(doc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return g.Render(resolved)
}

// Run generates the declarations and writes them to the configured output
// file, or to stdout when none is set. The bytes written are the same in
// both cases.
func (g *Generator) Run(ctx context.Context, stdout io.Writer) error {
	out, err := g.Generate(ctx)
	if err != nil {
		return err
	}

	if g.config.OutFile == "" {
		if _, err := stdout.Write(out); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(g.config.OutFile), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := os.WriteFile(g.config.OutFile, out, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	slog.Info("Wrote declarations", "file", g.config.OutFile, "bytes", len(out))
	return nil
}
