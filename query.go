package ooxmlschema

import (
	"maps"
	"slices"
	"strings"

	"github.com/jacoelho/ooxmlschema/errors"
	"github.com/jacoelho/ooxmlschema/pkg/artifact"
)

// GetPrefix returns the part of qname before the first colon, or "" when
// there is no colon.
func GetPrefix(qname string) string {
	prefix, _, ok := strings.Cut(qname, ":")
	if !ok {
		return ""
	}
	return prefix
}

// GetLocalName returns the part of qname after the first colon, or qname
// itself when there is no colon.
func GetLocalName(qname string) string {
	_, local, ok := strings.Cut(qname, ":")
	if !ok {
		return qname
	}
	return local
}

// ChildValidation is the outcome of ValidateChildren.
type ChildValidation struct {
	OK      bool
	Invalid []string
}

// Stats summarizes a compiled schema.
type Stats struct {
	TotalElements        int
	ElementsWithChildren int
	Namespaces           int
	// ByNamespace counts elements per prefix.
	ByNamespace map[string]int
}

// AllowedChildren returns the children legal under qname, in schema order.
// Unknown elements have no children.
func (s *Schema) AllowedChildren(qname string) []string {
	el, ok := s.element(qname)
	if !ok {
		return []string{}
	}
	return slices.Clone(el.Children)
}

// IsAllowedChild reports whether child is legal under parent.
func (s *Schema) IsAllowedChild(parent, child string) bool {
	el, ok := s.element(parent)
	return ok && slices.Contains(el.Children, child)
}

// ValidateChildren returns the members of children that are not legal under
// parent, in input order. An empty list is always valid.
func (s *Schema) ValidateChildren(parent string, children []string) ChildValidation {
	invalid := []string{}
	for _, c := range children {
		if !s.IsAllowedChild(parent, c) {
			invalid = append(invalid, c)
		}
	}
	return ChildValidation{OK: len(invalid) == 0, Invalid: invalid}
}

// CheckChildren is ValidateChildren reported as an error. It returns nil when
// every child is legal, and an errors.ValidationList otherwise.
func (s *Schema) CheckChildren(parent string, children []string) error {
	result := s.ValidateChildren(parent, children)
	if result.OK {
		return nil
	}
	if !s.HasElement(parent) {
		return errors.ValidationList{
			errors.NewValidationf(errors.ErrElementNotDeclared, parent, "element %s is not declared", parent),
		}
	}
	allowed := s.AllowedChildren(parent)
	list := make(errors.ValidationList, 0, len(result.Invalid))
	for _, c := range result.Invalid {
		v := errors.NewValidationf(errors.ErrChildNotAllowed, parent, "child %s is not allowed", c)
		v.Actual = c
		v.Expected = allowed
		list = append(list, v)
	}
	return list
}

// GetElementsByNamespace returns the sorted local names of the elements whose
// prefix is the one mapped to uri.
func (s *Schema) GetElementsByNamespace(uri string) []string {
	out := []string{}
	if s == nil {
		return out
	}
	prefix := s.art.Namespaces[uri]
	if prefix == "" {
		return out
	}
	for q := range s.art.Elements {
		if GetPrefix(q) == prefix {
			out = append(out, GetLocalName(q))
		}
	}
	slices.Sort(out)
	return out
}

// HasElement reports whether qname has an entry.
func (s *Schema) HasElement(qname string) bool {
	_, ok := s.element(qname)
	return ok
}

// GetAttributes returns a copy of the attributes of qname.
func (s *Schema) GetAttributes(qname string) artifact.AttributeMap {
	el, ok := s.element(qname)
	if !ok {
		return artifact.AttributeMap{}
	}
	return el.Attributes.Clone()
}

// GetSchemaStats counts elements and namespaces.
func (s *Schema) GetSchemaStats() Stats {
	stats := Stats{ByNamespace: map[string]int{}}
	if s == nil {
		return stats
	}
	stats.TotalElements = len(s.art.Elements)
	stats.Namespaces = len(s.art.Namespaces)
	for q, el := range s.art.Elements {
		if el != nil && len(el.Children) > 0 {
			stats.ElementsWithChildren++
		}
		stats.ByNamespace[GetPrefix(q)]++
	}
	return stats
}

// Namespaces returns a copy of the URI to prefix table.
func (s *Schema) Namespaces() map[string]string {
	if s == nil {
		return map[string]string{}
	}
	return maps.Clone(s.art.Namespaces)
}

type childrenFilter uint8

const (
	anyChildren childrenFilter = iota
	withChildren
	withoutChildren
)

// TagQuery selects element names for AllTags. The zero value selects every
// element, sorted.
type TagQuery struct {
	prefix   string
	children childrenFilter
	unsorted bool
}

// NewTagQuery returns a query matching every element.
func NewTagQuery() TagQuery {
	return TagQuery{}
}

// WithPrefix keeps elements in one prefix. A trailing colon is ignored.
func (q TagQuery) WithPrefix(prefix string) TagQuery {
	q.prefix = strings.TrimSuffix(prefix, ":")
	return q
}

// WithChildren keeps elements that have children (true) or have none (false).
func (q TagQuery) WithChildren(value bool) TagQuery {
	if value {
		q.children = withChildren
	} else {
		q.children = withoutChildren
	}
	return q
}

// Unsorted skips sorting the result.
func (q TagQuery) Unsorted() TagQuery {
	q.unsorted = true
	return q
}

func (q TagQuery) match(qname string, el *artifact.Element) bool {
	if q.prefix != "" && GetPrefix(qname) != q.prefix {
		return false
	}
	hasChildren := el != nil && len(el.Children) > 0
	switch q.children {
	case withChildren:
		return hasChildren
	case withoutChildren:
		return !hasChildren
	default:
		return true
	}
}

// AllTags returns the qualified names of the elements matching q.
func (s *Schema) AllTags(q TagQuery) []string {
	out := []string{}
	if s == nil {
		return out
	}
	for name, el := range s.art.Elements {
		if q.match(name, el) {
			out = append(out, name)
		}
	}
	if !q.unsorted {
		slices.Sort(out)
	}
	return out
}
