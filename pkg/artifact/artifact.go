// Package artifact defines the compiled schema file shared by the compiler
// and the runtime query layer.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

// FileName is the conventional name of the persisted artifact.
const FileName = "schema.transitional.json"

// AnyAttributeKey marks an element that accepts attributes from any namespace.
const AnyAttributeKey = "@anyAttribute"

// ReferencedType is the descriptor type of attributes declared by ref only.
const ReferencedType = "referenced"

// Schema is the compiled lookup model.
type Schema struct {
	Namespaces map[string]string   `json:"namespaces"`
	Elements   map[string]*Element `json:"elements"`
}

// Element is the entry for one qualified element name.
type Element struct {
	Children   []string     `json:"children"`
	Attributes AttributeMap `json:"attributes"`
}

// Attribute describes one attribute of an element.
type Attribute struct {
	Type string `json:"type"`
	Ref  string `json:"ref,omitempty"`
	Use  string `json:"use,omitempty"`
}

// AttributeMap is the attribute table of an element. In JSON the wildcard
// flag is stored inline as "@anyAttribute": true.
type AttributeMap struct {
	Attrs        map[string]Attribute
	AnyAttribute bool
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{
		Namespaces: make(map[string]string),
		Elements:   make(map[string]*Element),
	}
}

// NewElement returns an entry with no children and no attributes.
func NewElement() *Element {
	return &Element{Children: []string{}}
}

// Len returns the number of attributes, counting the wildcard flag.
func (m AttributeMap) Len() int {
	n := len(m.Attrs)
	if m.AnyAttribute {
		n++
	}
	return n
}

// Set stores attr under name, replacing any previous value.
func (m *AttributeMap) Set(name string, attr Attribute) {
	if m.Attrs == nil {
		m.Attrs = make(map[string]Attribute)
	}
	m.Attrs[name] = attr
}

// Merge copies other into m. Values in other win; the wildcard flag is only
// ever raised.
func (m *AttributeMap) Merge(other AttributeMap) {
	for name, attr := range other.Attrs {
		m.Set(name, attr)
	}
	if other.AnyAttribute {
		m.AnyAttribute = true
	}
}

// Clone returns a deep copy.
func (m AttributeMap) Clone() AttributeMap {
	return AttributeMap{Attrs: maps.Clone(m.Attrs), AnyAttribute: m.AnyAttribute}
}

// Names returns the attribute names in sorted order, without the wildcard key.
func (m AttributeMap) Names() []string {
	return slices.Sorted(maps.Keys(m.Attrs))
}

func (m AttributeMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, m.Len())
	for name, attr := range m.Attrs {
		out[name] = attr
	}
	if m.AnyAttribute {
		out[AnyAttributeKey] = true
	}
	return json.Marshal(out)
}

func (m *AttributeMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = AttributeMap{}
	for name, value := range raw {
		if name == AnyAttributeKey {
			var flag bool
			if err := json.Unmarshal(value, &flag); err != nil {
				return fmt.Errorf("attribute %s: %w", name, err)
			}
			m.AnyAttribute = m.AnyAttribute || flag
			continue
		}
		var attr Attribute
		if err := json.Unmarshal(value, &attr); err != nil {
			return fmt.Errorf("attribute %s: %w", name, err)
		}
		m.Set(name, attr)
	}
	return nil
}

// Read decodes an artifact. Missing maps decode as empty.
func Read(r io.Reader) (*Schema, error) {
	s := New()
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("decode schema artifact: %w", err)
	}
	if s.Namespaces == nil {
		s.Namespaces = make(map[string]string)
	}
	if s.Elements == nil {
		s.Elements = make(map[string]*Element)
	}
	for name, el := range s.Elements {
		if el == nil {
			s.Elements[name] = NewElement()
			continue
		}
		if el.Children == nil {
			el.Children = []string{}
		}
	}
	return s, nil
}

// ReadFile decodes the artifact stored at path.
func ReadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema artifact %s: %w", path, err)
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Write encodes s with two-space indentation. Map keys are emitted sorted,
// so equal schemas produce identical bytes.
func Write(w io.Writer, s *Schema) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode schema artifact: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile writes s to path, replacing any existing file.
func WriteFile(path string, s *Schema) error {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write schema artifact %s: %w", path, err)
	}
	return nil
}
