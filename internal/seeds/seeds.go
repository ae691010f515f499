// Package seeds holds the constants a compile run starts from: well-known
// namespace prefixes and the pass-through children legal under any container.
package seeds

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// SynthesizedPrefix is the prefix given to elements synthesized from CT_ types.
const SynthesizedPrefix = "w"

// Namespaces is the default URI to prefix table for the transitional vocabulary.
var Namespaces = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
	"http://schemas.openxmlformats.org/officeDocument/2006/math":             "m",
	"http://schemas.openxmlformats.org/officeDocument/2006/sharedTypes":      "s",
	"http://schemas.openxmlformats.org/officeDocument/2006/customXml":        "ds",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.openxmlformats.org/drawingml/2006/chart":                 "c",
	"http://schemas.openxmlformats.org/drawingml/2006/chartDrawing":          "cdr",
	"http://schemas.openxmlformats.org/drawingml/2006/diagram":               "dgm",
	"http://schemas.openxmlformats.org/drawingml/2006/lockedCanvas":          "lc",
	"http://schemas.openxmlformats.org/schemaLibrary/2006/main":              "sl",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
	"http://schemas.microsoft.com/office/word/2010/wordml":                   "w14",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingShape":      "wps",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup":      "wpg",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
	"urn:schemas-microsoft-com:vml":                                          "v",
	"urn:schemas-microsoft-com:office:office":                                "o",
	"urn:schemas-microsoft-com:office:word":                                  "w10",
	"http://www.w3.org/XML/1998/namespace":                                   "xml",
}

// PassThrough lists children that stay legal under every container
// regardless of the formal content model.
var PassThrough = []string{
	"mc:AlternateContent",
	"w:bookmarkEnd",
	"w:bookmarkStart",
	"w:commentRangeEnd",
	"w:commentRangeStart",
	"w:moveFromRangeEnd",
	"w:moveFromRangeStart",
	"w:moveToRangeEnd",
	"w:moveToRangeStart",
	"w:permEnd",
	"w:permStart",
	"w:proofErr",
}

// Set is a resolved set of seeds for one compile run.
type Set struct {
	Namespaces  map[string]string `yaml:"namespaces"`
	PassThrough []string          `yaml:"passThrough"`
}

// Default returns a copy of the built-in seeds.
func Default() Set {
	return Set{
		Namespaces:  maps.Clone(Namespaces),
		PassThrough: slices.Clone(PassThrough),
	}
}

// Merge overlays other on s. Namespaces in other replace the seed for the same
// URI; pass-through members are added.
func (s Set) Merge(other Set) Set {
	out := Set{
		Namespaces:  maps.Clone(s.Namespaces),
		PassThrough: slices.Clone(s.PassThrough),
	}
	if out.Namespaces == nil {
		out.Namespaces = make(map[string]string, len(other.Namespaces))
	}
	maps.Copy(out.Namespaces, other.Namespaces)
	for _, q := range other.PassThrough {
		if !slices.Contains(out.PassThrough, q) {
			out.PassThrough = append(out.PassThrough, q)
		}
	}
	return out
}

// Parse decodes a YAML seed document.
func Parse(data []byte) (Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("decode seeds: %w", err)
	}
	return s, nil
}

// LoadFile reads a YAML seed file and merges it over the defaults.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read seeds %s: %w", path, err)
	}
	overlay, err := Parse(data)
	if err != nil {
		return Set{}, fmt.Errorf("read seeds %s: %w", path, err)
	}
	return Default().Merge(overlay), nil
}
