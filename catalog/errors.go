// Package catalog reads and writes the YAML configuration of a tile set:
// sheets, groups, collision formulas and categories, and the transition and
// circuit catalogs extracted from sample maps.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/shared/tilemap"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownAxis        = collision.ErrUnknownAxis
	ErrUnknownOrientation = tilemap.ErrUnknownOrientation
	ErrUnknownFormula     = collision.ErrUnknownFormula
	ErrInvalidRange       = collision.ErrInvalidRange
	ErrUnknownType        = errors.New("unknown type")
	ErrUnknownGroup       = errors.New("unknown group")
	ErrMissingAttribute   = errors.New("missing attribute")
	ErrMalformed          = errors.New("malformed document")
)

// ConfigError locates a configuration problem.
type ConfigError struct {
	File string
	Node string
	Err  error
}

func (e *ConfigError) Error() string {
	switch {
	case e.File == "" && e.Node == "":
		return e.Err.Error()
	case e.Node == "":
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	case e.File == "":
		return fmt.Sprintf("%s: %v", e.Node, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.File, e.Node, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(file, node string, err error) error {
	return &ConfigError{File: file, Node: node, Err: err}
}

func missing(file, node, attr string) error {
	return configError(file, node, fmt.Errorf("%s: %w", attr, ErrMissingAttribute))
}

// typeError keeps the parse error of a typed enum and marks it as
// ErrUnknownType.
func typeError(file, node string, err error) error {
	return configError(file, node, fmt.Errorf("%w: %w", ErrUnknownType, err))
}

// decode reads one YAML document into v. Keys v does not declare are an
// error. An empty document leaves v untouched.
func decode(file string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return configError(file, "", fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	return nil
}

// required returns the value of a mandatory scalar, or a missing attribute
// error naming it.
func required[T any](v *T, file, node, attr string) (T, error) {
	if v == nil {
		var zero T
		return zero, missing(file, node, attr)
	}
	return *v, nil
}
