package template

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// LoadExternalTemplates parses template files, or directories of *.tpl files,
// on top of the embedded set. A definition in a loaded file replaces the
// embedded template of the same name. The set is only replaced when every
// path loads.
func (m *Manager) LoadExternalTemplates(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	newTpl, err := m.tmpl.Clone()
	if err != nil {
		return fmt.Errorf("template clone failed: %w", err)
	}

	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("template path %s: %w", path, err)
		}

		files := []string{path}
		if fi.IsDir() {
			files, err = filepath.Glob(filepath.Join(path, "*.tpl"))
			if err != nil {
				return fmt.Errorf("glob pattern error: %w", err)
			}
			if len(files) == 0 {
				return fmt.Errorf("no *.tpl files in %s", path)
			}
		}

		for _, f := range files {
			if _, err := newTpl.ParseFiles(f); err != nil {
				return fmt.Errorf("parse %s failed: %w", f, err)
			}
			slog.Debug("Loaded template file", "file", f)
		}
	}

	candidate := &Manager{tmpl: newTpl}
	if err := candidate.checkRequired(); err != nil {
		return err
	}
	m.tmpl = candidate.tmpl
	return nil
}
