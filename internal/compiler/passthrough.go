package compiler

import (
	"slices"

	"github.com/jzelinskie/stringz"

	"github.com/jacoelho/ooxmlschema/pkg/artifact"
)

// augmentPassThrough makes every pass-through child legal under every
// container. A container is an element with at least one child, or a declared
// element without any type.
func augmentPassThrough(elements map[string]*artifact.Element, typeless map[string]bool, passThrough []string) {
	pt := stringz.Dedup(passThrough)
	slices.Sort(pt)
	for qname, el := range elements {
		if len(el.Children) == 0 && !typeless[qname] {
			continue
		}
		el.Children = appendPassThrough(el.Children, pt)
	}
}

// appendPassThrough keeps the first occurrence of each pass-through member
// already present, then appends the missing ones in sorted order. Other
// duplicates are preserved.
func appendPassThrough(children, sortedPT []string) []string {
	seen := make(map[string]bool, len(sortedPT))
	out := make([]string, 0, len(children)+len(sortedPT))
	for _, child := range children {
		if stringz.SliceContains(sortedPT, child) {
			if seen[child] {
				continue
			}
			seen[child] = true
		}
		out = append(out, child)
	}
	for _, p := range sortedPT {
		if !seen[p] {
			out = append(out, p)
		}
	}
	return out
}
