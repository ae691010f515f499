package compiler

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jacoelho/ooxmlschema/internal/contentmodel"
	log "github.com/jacoelho/ooxmlschema/internal/logging"
	"github.com/jacoelho/ooxmlschema/internal/seeds"
	"github.com/jacoelho/ooxmlschema/internal/xsdtree"
)

const (
	// typePrefix marks complex types named after the element they describe.
	typePrefix = "CT_"
	// SynthesisCutoff is the suffix length from which CT_ types are no longer
	// turned into elements. Long names are mostly helper types.
	SynthesisCutoff = 11
)

// SynthesizedName returns the element name synthesized for a complex type
// name, or false when the name does not qualify.
func SynthesizedName(typeName string) (string, bool) {
	suffix, ok := strings.CutPrefix(typeName, typePrefix)
	if !ok || suffix == "" || len(suffix) >= SynthesisCutoff {
		return "", false
	}
	return contentmodel.QName(seeds.SynthesizedPrefix, lowerFirst(suffix)), true
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// synthesizeFile creates elements for CT_ types that no element declaration
// uses. Existing elements are never touched.
func (c *compiler) synthesizeFile(f *sourceFile) {
	for _, ct := range f.doc.Root.All(xsdtree.KindComplexType) {
		if c.typed[ct] {
			continue
		}
		qname, ok := SynthesizedName(ct.Name())
		if !ok {
			continue
		}
		if _, exists := c.out.Elements[qname]; exists {
			continue
		}
		el := c.entry(qname)
		c.expandInto(qname, el, contentmodel.Def{Node: ct, Namespace: f.doc.TargetNamespace, File: f.name})
		c.synthesized++
		log.Debug().Str("element", qname).Str("type", ct.Name()).Msg("synthesized element from type name")
	}
}
