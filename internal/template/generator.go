// Package template renders a resolved schema into TypeScript declarations.
//
// A Manager owns its own template set and filter functions, so every run
// builds a fresh rendering context and nothing is shared between runs.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"text/template"
)

//go:embed *.tpl
var templates embed.FS

// Names of the templates every Manager defines.
const (
	ModuleTemplate    = "module"
	InterfaceTemplate = "interface"
	EnumTemplate      = "enum"
	BuilderTemplate   = "builder"
)

// RequiredTemplates lists the templates a template set must define.
var RequiredTemplates = []string{ModuleTemplate, InterfaceTemplate, EnumTemplate, BuilderTemplate}

// Manager is a template manager that holds and renders templates.
type Manager struct {
	tmpl *template.Template
}

// NewManager creates a new template manager and parses the embedded templates.
func NewManager() (*Manager, error) {
	return newManager(templates)
}

func newManager(fsys fs.FS) (*Manager, error) {
	tmpl, err := template.New("proto2ts").Funcs(FuncMap()).ParseFS(fsys, "*.tpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	m := &Manager{tmpl: tmpl}
	if err := m.checkRequired(); err != nil {
		return nil, err
	}
	return m, nil
}

// Render executes the named template with the given data.
func (m *Manager) Render(templateName string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&buf, templateName, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Has reports whether a template with the given name is defined.
func (m *Manager) Has(templateName string) bool {
	return m.tmpl.Lookup(templateName) != nil
}

func (m *Manager) checkRequired() error {
	for _, name := range RequiredTemplates {
		if !m.Has(name) {
			return fmt.Errorf("template %q is not defined", name)
		}
	}
	return nil
}
