// Package attrextract flattens the attributes a complex type allows,
// following extension bases and attribute group references.
package attrextract

import (
	"github.com/jacoelho/ooxmlschema/internal/contentmodel"
	"github.com/jacoelho/ooxmlschema/internal/nsmap"
	"github.com/jacoelho/ooxmlschema/internal/xsdtree"
	"github.com/jacoelho/ooxmlschema/pkg/artifact"
)

// DefaultSimpleType is recorded for attributes declared without a type.
const DefaultSimpleType = "xs:anySimpleType"

// Extractor resolves attribute maps against one compile run.
type Extractor struct {
	index *contentmodel.Index
	table *nsmap.Table
}

// New returns an extractor over index, qualifying names through table.
func New(index *contentmodel.Index, table *nsmap.Table) *Extractor {
	return &Extractor{index: index, table: table}
}

// Extract returns the attribute map of a complex type. Extension bases are
// merged first so that the derived type's declarations win. Simple types and
// unknown definitions yield an empty map.
func (x *Extractor) Extract(def contentmodel.Def) artifact.AttributeMap {
	var out artifact.AttributeMap
	if def.IsZero() {
		return out
	}
	x.extractType(&out, def, make(map[*xsdtree.Node]bool))
	return out
}

func (x *Extractor) extractType(out *artifact.AttributeMap, def contentmodel.Def, visiting map[*xsdtree.Node]bool) {
	ct := def.Node
	if ct == nil || ct.Kind != xsdtree.KindComplexType || visiting[ct] {
		return
	}
	visiting[ct] = true
	defer delete(visiting, ct)

	for _, content := range ct.All(xsdtree.KindComplexContent, xsdtree.KindSimpleContent) {
		if ext := content.First(xsdtree.KindExtension); ext != nil {
			if base, ok := x.index.ResolveType(ext, ext.Attr("base"), def.Namespace, def.File); ok {
				x.extractType(out, base, visiting)
			}
			x.collect(out, ext, def.Namespace, make(map[*xsdtree.Node]bool))
		}
		if res := content.First(xsdtree.KindRestriction); res != nil {
			x.collect(out, res, def.Namespace, make(map[*xsdtree.Node]bool))
		}
	}
	x.collect(out, ct, def.Namespace, make(map[*xsdtree.Node]bool))
}

// collect merges the attribute declarations that are direct children of n:
// attributes, attribute group references and wildcards.
func (x *Extractor) collect(out *artifact.AttributeMap, n *xsdtree.Node, tns string, groups map[*xsdtree.Node]bool) {
	for _, c := range n.Children {
		switch c.Kind {
		case xsdtree.KindAttribute:
			x.attribute(out, c, tns)
		case xsdtree.KindAttributeGroup:
			group, ok := x.index.ResolveAttributeGroup(c, c.Attr("ref"), tns)
			if !ok || groups[group.Node] {
				continue
			}
			groups[group.Node] = true
			x.collect(out, group.Node, group.Namespace, groups)
		case xsdtree.KindAnyAttribute:
			out.AnyAttribute = true
		}
	}
}

func (x *Extractor) attribute(out *artifact.AttributeMap, n *xsdtree.Node, tns string) {
	use := n.Attr("use")
	var key string
	var attr artifact.Attribute

	if name := n.Name(); name != "" {
		key = x.qualify(tns, name)
		attr = artifact.Attribute{Type: x.typeName(n, tns), Use: use}
	} else if ref := n.Attr("ref"); ref != "" {
		resolved, ok := n.ResolveQName(ref, tns)
		if ok {
			key = x.qualify(resolved.Space, resolved.Local)
		} else {
			key = x.qualify(tns, resolved.Local)
		}
		attr = artifact.Attribute{Type: artifact.ReferencedType, Ref: key, Use: use}
	} else {
		return
	}

	if use == "prohibited" {
		delete(out.Attrs, key)
		return
	}
	out.Set(key, attr)
}

func (x *Extractor) typeName(n *xsdtree.Node, tns string) string {
	lexical := n.Attr("type")
	if lexical == "" {
		return DefaultSimpleType
	}
	name, ok := n.ResolveQName(lexical, tns)
	switch {
	case !ok:
		return lexical
	case name.Space == xsdtree.XSDNamespace:
		return contentmodel.QName("xs", name.Local)
	default:
		return x.qualify(name.Space, name.Local)
	}
}

func (x *Extractor) qualify(uri, local string) string {
	if uri == "" {
		return local
	}
	return contentmodel.QName(x.table.Resolve(uri), local)
}
