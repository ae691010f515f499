package contentmodel

import (
	"github.com/jacoelho/ooxmlschema/internal/nsmap"
	"github.com/jacoelho/ooxmlschema/internal/xsdtree"
)

// Particle is one element particle of an expanded content model: a local
// declaration (name) or a reference (ref). Namespace is the target namespace
// of the schema document the particle is written in.
type Particle struct {
	Node      *xsdtree.Node
	Namespace string
	File      string
}

// IsRef reports whether the particle references a declaration elsewhere.
func (p Particle) IsRef() bool {
	return p.Node.HasAttr("ref")
}

// QName joins prefix and local. An empty prefix yields the bare local name.
func QName(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// ContentRoot returns the node holding the element content of a complex type:
// the extension or restriction of complexContent, or the top-level model
// group or group reference. Simple content and empty types have no root.
func ContentRoot(ct *xsdtree.Node) *xsdtree.Node {
	if ct == nil {
		return nil
	}
	if cc := ct.First(xsdtree.KindComplexContent); cc != nil {
		if ext := cc.First(xsdtree.KindExtension); ext != nil {
			return ext
		}
		return cc.First(xsdtree.KindRestriction)
	}
	if ct.First(xsdtree.KindSimpleContent) != nil {
		return nil
	}
	for _, c := range ct.Children {
		if c.Kind.IsModelGroup() || c.Kind == xsdtree.KindGroup {
			return c
		}
	}
	return nil
}

// Expand flattens the content model of a complex type into its element
// particles in document order. Extensions list the base content first.
// Unresolvable bases and group references contribute nothing.
func (ix *Index) Expand(def Def) []Particle {
	e := expander{ix: ix, active: make(map[*xsdtree.Node]bool)}
	e.expandType(def)
	return e.out
}

type expander struct {
	ix     *Index
	active map[*xsdtree.Node]bool
	out    []Particle
}

func (e *expander) expandType(def Def) {
	if def.Node == nil || def.Node.Kind != xsdtree.KindComplexType || e.active[def.Node] {
		return
	}
	e.active[def.Node] = true
	defer delete(e.active, def.Node)

	root := ContentRoot(def.Node)
	if root == nil {
		return
	}
	if root.Kind == xsdtree.KindExtension {
		if base, ok := e.ix.ResolveType(root, root.Attr("base"), def.Namespace, def.File); ok {
			e.expandType(base)
		}
	}
	e.expandNode(root, def.Namespace, def.File)
}

func (e *expander) expandNode(n *xsdtree.Node, tns, file string) {
	switch {
	case n.Kind == xsdtree.KindGroup:
		e.expandGroupRef(n, tns, file)
	case n.Kind.IsModelGroup(), n.Kind == xsdtree.KindExtension, n.Kind == xsdtree.KindRestriction:
		for _, c := range n.Children {
			switch {
			case c.Kind == xsdtree.KindElement:
				e.out = append(e.out, Particle{Node: c, Namespace: tns, File: file})
			case c.Kind.IsModelGroup(), c.Kind == xsdtree.KindGroup:
				e.expandNode(c, tns, file)
			}
		}
	}
}

func (e *expander) expandGroupRef(n *xsdtree.Node, tns, file string) {
	ref := n.Attr("ref")
	if ref == "" {
		// a named group definition reached directly
		for _, c := range n.Children {
			if c.Kind.IsModelGroup() {
				e.expandNode(c, tns, file)
			}
		}
		return
	}
	group, ok := e.ix.ResolveGroup(n, ref, tns)
	if !ok || e.active[group.Node] {
		return
	}
	e.active[group.Node] = true
	defer delete(e.active, group.Node)
	for _, c := range group.Node.Children {
		if c.Kind.IsModelGroup() {
			e.expandNode(c, group.Namespace, group.File)
		}
	}
}

// ResolveChildQName returns the qualified name of the child a particle
// stands for. Unprefixed refs and local names belong to the particle's
// namespace. Namespaces missing from the table are assigned a prefix.
func ResolveChildQName(p Particle, table *nsmap.Table) (string, bool) {
	if p.Node == nil {
		return "", false
	}
	if p.IsRef() {
		name, ok := p.Node.ResolveQName(p.Node.Attr("ref"), p.Namespace)
		if !ok {
			return "", false
		}
		return qualify(table, name.Space, name.Local), true
	}
	local := p.Node.Name()
	if local == "" {
		return "", false
	}
	return qualify(table, p.Namespace, local), true
}

func qualify(table *nsmap.Table, uri, local string) string {
	if uri == "" {
		return local
	}
	return QName(table.Resolve(uri), local)
}
