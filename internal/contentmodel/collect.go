package contentmodel

import (
	"github.com/jacoelho/ooxmlschema/internal/nsmap"
	"github.com/jacoelho/ooxmlschema/internal/xsdtree"
)

// RefOrigin records where an element reference was seen.
type RefOrigin struct {
	Namespace string
	Prefix    string
}

// CollectRefs walks every element particle below root and records each
// reference to an element without a top-level declaration under its qualified
// name. The first origin seen wins.
func (ix *Index) CollectRefs(root *xsdtree.Node, tns string, table *nsmap.Table, refs map[string]RefOrigin) {
	if root == nil {
		return
	}
	for _, c := range root.Children {
		if c.Kind == xsdtree.KindElement && c.HasAttr("ref") && !ix.declared(c, tns) {
			p := Particle{Node: c, Namespace: tns}
			if qname, ok := ResolveChildQName(p, table); ok {
				if _, seen := refs[qname]; !seen {
					name, _ := c.ResolveQName(c.Attr("ref"), tns)
					prefix, _ := table.Prefix(name.Space)
					refs[qname] = RefOrigin{Namespace: name.Space, Prefix: prefix}
				}
			}
		}
		ix.CollectRefs(c, tns, table, refs)
	}
}

func (ix *Index) declared(ref *xsdtree.Node, tns string) bool {
	_, ok := ix.ResolveElement(ref, ref.Attr("ref"), tns)
	return ok
}
