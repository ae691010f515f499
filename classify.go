package ooxmlschema

import "github.com/jacoelho/ooxmlschema/internal/inspect"

// Role is the content role of an element: block, inline or unknown.
type Role = inspect.Role

const (
	RoleBlock   = inspect.Block
	RoleInline  = inspect.Inline
	RoleUnknown = inspect.Unknown
)

// DefaultDepth is the classification depth used by the command line tools.
const DefaultDepth = inspect.DefaultDepth

// Classify returns the role of qname, looking at most depth levels below it.
// Results are memoized per schema and survive until ClearInspectorCache.
func (s *Schema) Classify(qname string, depth int) Role {
	if s == nil {
		return RoleUnknown
	}
	return inspect.Classify(s.art.Elements, s.cache, qname, depth)
}

// ClearInspectorCache drops the memoized roles of s.
func (s *Schema) ClearInspectorCache() {
	if s == nil {
		return
	}
	s.cache.Clear()
}

// ClearInspectorCache drops the memoized roles of s. A nil s clears the
// default schema's cache if it has been loaded; it never triggers a load.
func ClearInspectorCache(s *Schema) {
	if s == nil {
		s = loadedDefault()
	}
	s.ClearInspectorCache()
}
