// Package ooxmlschema compiles the OOXML transitional XSD set into a compact
// lookup model and answers queries about legal children, attributes and the
// block or inline role of elements.
package ooxmlschema

import (
	"fmt"
	"io"

	"github.com/jacoelho/ooxmlschema/internal/inspect"
	"github.com/jacoelho/ooxmlschema/pkg/artifact"
)

// Schema wraps a compiled schema with query helpers. A Schema is read-only
// after construction and safe for concurrent use. Methods on a nil Schema
// behave as on an empty one.
type Schema struct {
	art   *artifact.Schema
	cache *inspect.Cache
}

func newSchema(art *artifact.Schema) *Schema {
	if art == nil {
		art = artifact.New()
	}
	return &Schema{art: art, cache: inspect.NewCache()}
}

// Load decodes a compiled schema artifact.
func Load(r io.Reader) (*Schema, error) {
	art, err := artifact.Read(r)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return newSchema(art), nil
}

// LoadFile decodes the compiled schema artifact at path.
func LoadFile(path string) (*Schema, error) {
	art, err := artifact.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return newSchema(art), nil
}

// Artifact returns the underlying compiled model. Callers must not modify it.
func (s *Schema) Artifact() *artifact.Schema {
	if s == nil {
		return artifact.New()
	}
	return s.art
}

// Write encodes the schema as an artifact.
func (s *Schema) Write(w io.Writer) error {
	return artifact.Write(w, s.Artifact())
}

// WriteFile writes the schema artifact to path.
func (s *Schema) WriteFile(path string) error {
	return artifact.WriteFile(path, s.Artifact())
}

func (s *Schema) element(qname string) (*artifact.Element, bool) {
	if s == nil {
		return nil, false
	}
	el, ok := s.art.Elements[qname]
	return el, ok && el != nil
}
