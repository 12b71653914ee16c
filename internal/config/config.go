// Package config holds the settings of a generation run.
package config

import (
	"errors"

	"github.com/origadmin/proto2ts/internal/model"
)

// DefaultPackage is the root package used when neither the settings nor the
// input document name one.
const DefaultPackage = "Proto2TypeScript"

// ErrMissingFile is returned by Validate when no input file is set.
var ErrMissingFile = errors.New("no input file given")

// Config holds the complete configuration for a generation run.
type Config struct {
	// File is the path of the JSON schema description.
	File string `yaml:"file"`
	// OutFile is the output path. Output goes to stdout when empty.
	OutFile string `yaml:"outFile"`
	// CamelCaseGetSet generates getters and setters in camel case notation.
	CamelCaseGetSet bool `yaml:"camelCaseGetSet"`
	// UnderscoreGetSet generates getters and setters in underscore notation.
	UnderscoreGetSet bool `yaml:"underscoreGetSet"`
	// Properties generates plain properties.
	Properties bool `yaml:"properties"`
	// Package overrides the root package name.
	Package string `yaml:"package"`
	// Templates is a template file or directory loaded over the embedded templates.
	Templates string `yaml:"templates"`
	// Strict rejects duplicate sibling names instead of letting the later one win.
	Strict bool `yaml:"strict"`
}

// NewDefaultConfig creates a default configuration.
func NewDefaultConfig() *Config {
	return &Config{
		CamelCaseGetSet:  true,
		UnderscoreGetSet: false,
		Properties:       true,
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Settings returns the rendering settings copied onto every resolved message.
func (c *Config) Settings() model.Settings {
	return model.Settings{
		CamelCaseGetSet:  c.CamelCaseGetSet,
		UnderscoreGetSet: c.UnderscoreGetSet,
		Properties:       c.Properties,
	}
}

// PackageName picks the root package: the configured one, then the one
// declared by the document, then DefaultPackage.
func (c *Config) PackageName(declared string) string {
	switch {
	case c.Package != "":
		return c.Package
	case declared != "":
		return declared
	default:
		return DefaultPackage
	}
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.File == "" {
		return ErrMissingFile
	}
	return nil
}
