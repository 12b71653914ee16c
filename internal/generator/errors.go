package generator

import "errors"

// Failures of a generation run wrap one of these.
var (
	// ErrReadInput means the schema file could not be read.
	ErrReadInput = errors.New("read input")
	// ErrDecode means the schema file is not a valid JSON description.
	ErrDecode = errors.New("decode input")
	// ErrTemplate means the templates could not be loaded.
	ErrTemplate = errors.New("load templates")
	// ErrResolve means name resolution rejected the schema.
	ErrResolve = errors.New("resolve names")
	// ErrRender means a template failed while rendering.
	ErrRender = errors.New("render output")
	// ErrWriteOutput means the rendered text could not be written.
	ErrWriteOutput = errors.New("write output")
)
