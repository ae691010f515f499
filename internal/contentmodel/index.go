package contentmodel

import (
	"encoding/xml"

	"github.com/jacoelho/ooxmlschema/internal/xsdtree"
)

// Def is a named schema component together with the document it came from.
type Def struct {
	Node      *xsdtree.Node
	Namespace string
	File      string
}

// IsZero reports whether d refers to nothing.
func (d Def) IsZero() bool {
	return d.Node == nil
}

// Index holds the named components of every schema file in a compile run.
type Index struct {
	types      map[xml.Name]Def
	groups     map[xml.Name]Def
	attrGroups map[xml.Name]Def
	elements   map[xml.Name]Def

	// localTypes indexes complex types by local name per file.
	localTypes map[string]map[string]Def
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		types:      make(map[xml.Name]Def),
		groups:     make(map[xml.Name]Def),
		attrGroups: make(map[xml.Name]Def),
		elements:   make(map[xml.Name]Def),
		localTypes: make(map[string]map[string]Def),
	}
}

// AddDocument indexes the top-level components of doc. The first definition
// of a name wins.
func (ix *Index) AddDocument(file string, doc *xsdtree.Document) {
	tns := doc.TargetNamespace
	local := ix.localTypes[file]
	if local == nil {
		local = make(map[string]Def)
		ix.localTypes[file] = local
	}
	for _, n := range doc.Root.Children {
		name := n.Name()
		if name == "" {
			continue
		}
		def := Def{Node: n, Namespace: tns, File: file}
		key := xml.Name{Space: tns, Local: name}
		switch n.Kind {
		case xsdtree.KindComplexType:
			if _, ok := local[name]; !ok {
				local[name] = def
			}
			addOnce(ix.types, key, def)
		case xsdtree.KindSimpleType:
			addOnce(ix.types, key, def)
		case xsdtree.KindGroup:
			addOnce(ix.groups, key, def)
		case xsdtree.KindAttributeGroup:
			addOnce(ix.attrGroups, key, def)
		case xsdtree.KindElement:
			addOnce(ix.elements, key, def)
		}
	}
}

func addOnce(m map[xml.Name]Def, key xml.Name, def Def) {
	if _, ok := m[key]; !ok {
		m[key] = def
	}
}

// ResolveType resolves a type reference written on from. Unprefixed names
// resolve within tns. When the qualified lookup misses, complex types of the
// same file are matched by local name. Built-in XSD types never resolve.
func (ix *Index) ResolveType(from *xsdtree.Node, lexical, tns, file string) (Def, bool) {
	name, ok := from.ResolveQName(lexical, tns)
	if name.Space == xsdtree.XSDNamespace {
		return Def{}, false
	}
	if ok {
		if def, found := ix.types[name]; found {
			return def, true
		}
	}
	if name.Local == "" {
		return Def{}, false
	}
	def, found := ix.localTypes[file][name.Local]
	return def, found
}

// ResolveGroup resolves a model group reference.
func (ix *Index) ResolveGroup(from *xsdtree.Node, lexical, tns string) (Def, bool) {
	return lookup(ix.groups, from, lexical, tns)
}

// ResolveAttributeGroup resolves an attribute group reference.
func (ix *Index) ResolveAttributeGroup(from *xsdtree.Node, lexical, tns string) (Def, bool) {
	return lookup(ix.attrGroups, from, lexical, tns)
}

// ResolveElement resolves a reference to a top-level element declaration.
func (ix *Index) ResolveElement(from *xsdtree.Node, lexical, tns string) (Def, bool) {
	return lookup(ix.elements, from, lexical, tns)
}

func lookup(m map[xml.Name]Def, from *xsdtree.Node, lexical, tns string) (Def, bool) {
	name, ok := from.ResolveQName(lexical, tns)
	if !ok {
		return Def{}, false
	}
	def, found := m[name]
	return def, found
}
