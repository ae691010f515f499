// Package inspect classifies compiled elements as block or inline content by
// looking at the children they allow.
package inspect

import (
	"strconv"
	"strings"

	"github.com/jzelinskie/stringz"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/jacoelho/ooxmlschema/pkg/artifact"
)

// Role is the content role of an element.
type Role string

const (
	Block   Role = "block"
	Inline  Role = "inline"
	Unknown Role = "unknown"
)

// DefaultDepth is how many levels below an element are inspected by default.
const DefaultDepth = 2

// Local names whose presence marks the parent as block or inline content.
var (
	blockSignals  = []string{"p", "tbl"}
	inlineSignals = []string{"r", "t"}
)

// Cache memoizes roles per qualified name and depth. Entries are never
// invalidated by changes to the elements they were computed from.
type Cache struct {
	m *xsync.Map[string, Role]
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{m: xsync.NewMap[string, Role]()}
}

// Clear drops every memoized role.
func (c *Cache) Clear() {
	c.m.Clear()
}

// Len returns the number of memoized roles.
func (c *Cache) Len() int {
	return c.m.Size()
}

func cacheKey(qname string, depth int) string {
	return qname + "|" + strconv.Itoa(depth)
}

// Classify returns the role of qname, inspecting at most depth levels of
// descendants. A block signal anywhere within reach wins over an inline one.
// Negative depths are treated as zero.
func Classify(elements map[string]*artifact.Element, cache *Cache, qname string, depth int) Role {
	if depth < 0 {
		depth = 0
	}
	key := cacheKey(qname, depth)
	if role, ok := cache.m.Load(key); ok {
		return role
	}
	role := classify(elements, cache, qname, depth)
	cache.m.Store(key, role)
	return role
}

func classify(elements map[string]*artifact.Element, cache *Cache, qname string, depth int) Role {
	el, ok := elements[qname]
	if !ok || el == nil {
		return Unknown
	}

	role := Unknown
	for _, child := range el.Children {
		local := localName(child)
		if stringz.SliceContains(blockSignals, local) {
			return Block
		}
		if stringz.SliceContains(inlineSignals, local) {
			role = Inline
		}
	}

	if depth == 0 {
		return role
	}
	for _, child := range el.Children {
		if _, present := elements[child]; !present {
			continue
		}
		switch Classify(elements, cache, child, depth-1) {
		case Block:
			return Block
		case Inline:
			role = Inline
		}
	}
	return role
}

func localName(qname string) string {
	if _, local, ok := strings.Cut(qname, ":"); ok {
		return local
	}
	return qname
}
