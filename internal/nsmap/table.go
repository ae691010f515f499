package nsmap

import (
	"maps"
	"slices"
	"strconv"
)

// Table maps namespace URIs to prefixes. A URI with a non-empty prefix is
// never remapped; an empty mapping counts as unmapped.
type Table struct {
	byURI    map[string]string
	byPrefix map[string]string
}

// New returns a table seeded with a copy of seed.
func New(seed map[string]string) *Table {
	t := &Table{
		byURI:    make(map[string]string, len(seed)),
		byPrefix: make(map[string]string, len(seed)),
	}
	for _, uri := range slices.Sorted(maps.Keys(seed)) {
		prefix := seed[uri]
		t.byURI[uri] = prefix
		if prefix != "" {
			if _, taken := t.byPrefix[prefix]; !taken {
				t.byPrefix[prefix] = uri
			}
		}
	}
	return t
}

// Resolve returns the prefix for uri, assigning g<size> when unmapped.
func (t *Table) Resolve(uri string) string {
	return t.ResolveHint(uri, "")
}

// ResolveHint is Resolve with a preferred prefix for unmapped URIs. The hint
// is only used when no other URI already owns it.
func (t *Table) ResolveHint(uri, hint string) string {
	if prefix := t.byURI[uri]; prefix != "" {
		return prefix
	}
	prefix := hint
	if prefix == "" || t.taken(prefix, uri) {
		prefix = t.nextGenerated(uri)
	}
	t.byURI[uri] = prefix
	t.byPrefix[prefix] = uri
	return prefix
}

func (t *Table) nextGenerated(uri string) string {
	for n := len(t.byURI); ; n++ {
		prefix := "g" + strconv.Itoa(n)
		if !t.taken(prefix, uri) {
			return prefix
		}
	}
}

func (t *Table) taken(prefix, uri string) bool {
	owner, ok := t.byPrefix[prefix]
	return ok && owner != uri
}

// Prefix returns the mapped prefix without assigning one.
func (t *Table) Prefix(uri string) (string, bool) {
	prefix := t.byURI[uri]
	return prefix, prefix != ""
}

// Len returns the number of URIs in the table, including empty mappings.
func (t *Table) Len() int {
	return len(t.byURI)
}

// Snapshot returns a copy of the URI to prefix mapping.
func (t *Table) Snapshot() map[string]string {
	return maps.Clone(t.byURI)
}
