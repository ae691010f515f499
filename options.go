package ooxmlschema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jacoelho/ooxmlschema/internal/seeds"
)

// CompileOptions configures a compile run. The zero value compiles with the
// built-in namespace prefixes and pass-through children.
type CompileOptions struct {
	namespaces  map[string]string
	passThrough []string
	extraNS     map[string]string
	extraPT     []string
}

// NewCompileOptions returns a default, valid compile options value.
func NewCompileOptions() CompileOptions {
	return CompileOptions{}
}

// WithNamespaces replaces the seed URI to prefix table.
func (o CompileOptions) WithNamespaces(value map[string]string) CompileOptions {
	o.namespaces = maps.Clone(value)
	if o.namespaces == nil {
		o.namespaces = map[string]string{}
	}
	return o
}

// WithNamespace adds one seed mapping on top of the seed table.
func (o CompileOptions) WithNamespace(uri, prefix string) CompileOptions {
	o.extraNS = maps.Clone(o.extraNS)
	if o.extraNS == nil {
		o.extraNS = make(map[string]string, 1)
	}
	o.extraNS[uri] = prefix
	return o
}

// WithPassThrough replaces the pass-through children.
func (o CompileOptions) WithPassThrough(qnames ...string) CompileOptions {
	o.passThrough = append([]string{}, qnames...)
	return o
}

// WithExtraPassThrough adds pass-through children on top of the seed list.
func (o CompileOptions) WithExtraPassThrough(qnames ...string) CompileOptions {
	o.extraPT = append(slices.Clone(o.extraPT), qnames...)
	return o
}

// Validate validates compile options values.
func (o CompileOptions) Validate() error {
	_, err := o.resolve()
	return err
}

func (o CompileOptions) resolve() (seeds.Set, error) {
	base := seeds.Default()
	if o.namespaces != nil {
		base.Namespaces = maps.Clone(o.namespaces)
	}
	if o.passThrough != nil {
		base.PassThrough = slices.Clone(o.passThrough)
	}
	set := base.Merge(seeds.Set{Namespaces: o.extraNS, PassThrough: o.extraPT})

	for uri := range set.Namespaces {
		if uri == "" {
			return seeds.Set{}, fmt.Errorf("compile options: empty namespace URI")
		}
	}
	for _, q := range set.PassThrough {
		if GetPrefix(q) == "" || GetLocalName(q) == "" {
			return seeds.Set{}, fmt.Errorf("compile options: pass-through child %q is not a qualified name", q)
		}
	}
	return set, nil
}
