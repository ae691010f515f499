package xsdtree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"aqwari.net/xml/xmltree"
)

const (
	// XSDNamespace is the XML Schema namespace URI.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema"
	// XMLNamespace is the namespace bound to the reserved xml prefix.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
)

// ErrNotSchema reports a document whose root is not a schema element.
var ErrNotSchema = errors.New("root element is not a schema")

// Node is one schema construct. Only constructs in the XML Schema namespace
// are kept; foreign children such as appinfo payloads are dropped.
type Node struct {
	Kind     Kind
	Children []*Node

	attrs map[string]string
	scope xmltree.Scope
}

// Document is a parsed schema file.
type Document struct {
	Root            *Node
	TargetNamespace string
}

// Parse parses one schema document. Both xs: and xsd: spellings, and schema
// files that never declare their schema prefix, normalize to the same kinds.
func Parse(data []byte) (*Document, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	if kindOf(root.Name) != KindSchema {
		return nil, fmt.Errorf("%w: <%s>", ErrNotSchema, root.Name.Local)
	}

	doc := &Document{Root: convert(root)}
	doc.TargetNamespace = doc.Root.Attr("targetNamespace")
	return doc, nil
}

// PrefixHint returns the prefix the document root binds to uri, if any.
func (d *Document) PrefixHint(uri string) string {
	if d == nil || d.Root == nil || uri == "" || uri == XMLNamespace {
		return ""
	}
	qname := d.Root.scope.Prefix(xml.Name{Space: uri, Local: "_"})
	prefix, _, ok := strings.Cut(qname, ":")
	if !ok {
		return ""
	}
	return prefix
}

// convert copies the namespace scope xmltree collected for el, so QName
// values stay resolvable after the element tree is discarded.
func convert(el *xmltree.Element) *Node {
	n := &Node{
		Kind:  kindOf(el.Name),
		scope: el.Scope,
		attrs: make(map[string]string, len(el.StartElement.Attr)),
	}
	for _, a := range el.StartElement.Attr {
		// schema attributes are unqualified; qualified foreign attributes are ignored
		if a.Name.Space != "" {
			continue
		}
		n.attrs[a.Name.Local] = a.Value
	}
	for i := range el.Children {
		child := &el.Children[i]
		if kindOf(child.Name) == KindUnknown {
			continue
		}
		n.Children = append(n.Children, convert(child))
	}
	return n
}

// Attr returns the unqualified attribute value, or "" when absent.
func (n *Node) Attr(local string) string {
	if n == nil {
		return ""
	}
	return n.attrs[local]
}

// HasAttr reports whether the attribute is present, even if empty.
func (n *Node) HasAttr(local string) bool {
	if n == nil {
		return false
	}
	_, ok := n.attrs[local]
	return ok
}

// Name returns the name attribute.
func (n *Node) Name() string {
	return n.Attr("name")
}

// First returns the first direct child of the given kind.
func (n *Node) First(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// All returns every direct child whose kind is one of kinds.
func (n *Node) All(kinds ...Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		for _, k := range kinds {
			if c.Kind == k {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// LookupPrefix returns the namespace URI bound to prefix in this node's scope.
// The empty prefix looks up the default namespace.
func (n *Node) LookupPrefix(prefix string) (string, bool) {
	if n == nil {
		return "", false
	}
	name, ok := n.scope.ResolveNS(prefix + ":_")
	if !ok {
		return "", false
	}
	return name.Space, true
}

// ResolveQName resolves a prefixed lexical QName in this node's scope.
// Unprefixed names resolve to defaultNS, not to the document default namespace.
func (n *Node) ResolveQName(lexical, defaultNS string) (xml.Name, bool) {
	lexical = strings.TrimSpace(lexical)
	if lexical == "" {
		return xml.Name{}, false
	}
	_, local, ok := strings.Cut(lexical, ":")
	if !ok {
		return xml.Name{Space: defaultNS, Local: lexical}, true
	}
	if n == nil {
		return xml.Name{Local: local}, false
	}
	name, found := n.scope.ResolveNS(lexical)
	if !found {
		return xml.Name{Local: local}, false
	}
	return name, true
}
