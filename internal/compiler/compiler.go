// Package compiler distills a directory of XSD files into the compiled
// element lookup model.
package compiler

import (
	"errors"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	xsderrors "github.com/jacoelho/ooxmlschema/errors"
	"github.com/jacoelho/ooxmlschema/internal/attrextract"
	"github.com/jacoelho/ooxmlschema/internal/contentmodel"
	log "github.com/jacoelho/ooxmlschema/internal/logging"
	"github.com/jacoelho/ooxmlschema/internal/nsmap"
	"github.com/jacoelho/ooxmlschema/internal/seeds"
	"github.com/jacoelho/ooxmlschema/internal/xsdtree"
	"github.com/jacoelho/ooxmlschema/pkg/artifact"
)

// SchemaExt is the extension of files read from the schema directory.
const SchemaExt = ".xsd"

// Config configures one compile run.
type Config struct {
	Seeds seeds.Set
}

type sourceFile struct {
	name string
	doc  *xsdtree.Document
	refs map[string]contentmodel.RefOrigin
}

type contribution struct {
	qname string
	typ   *xsdtree.Node
}

type compiler struct {
	table *nsmap.Table
	index *contentmodel.Index
	attrs *attrextract.Extractor
	out   *artifact.Schema
	files []*sourceFile

	contributed map[contribution]bool
	typed       map[*xsdtree.Node]bool
	typeless    map[string]bool

	synthesized  int
	materialized int
}

// Build compiles every *.xsd file directly inside dir. Files are read in
// directory listing order. Missing types and bases degrade to empty entries;
// only unreadable files and malformed XML fail the run, and a failed run
// returns no schema.
func Build(fsys fs.FS, dir string, cfg Config) (*artifact.Schema, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, xsderrors.NewCompileError(xsderrors.ErrReadDir, dir, err)
	}

	c := &compiler{
		table:       nsmap.New(cfg.Seeds.Namespaces),
		index:       contentmodel.NewIndex(),
		out:         artifact.New(),
		contributed: make(map[contribution]bool),
		typed:       make(map[*xsdtree.Node]bool),
		typeless:    make(map[string]bool),
	}
	c.attrs = attrextract.New(c.index, c.table)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SchemaExt) {
			continue
		}
		if err := c.ingest(fsys, path.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	for _, f := range c.files {
		c.compileFile(f)
	}
	for _, f := range c.files {
		c.synthesizeFile(f)
	}
	c.materializeRefs()
	augmentPassThrough(c.out.Elements, c.typeless, cfg.Seeds.PassThrough)

	c.out.Namespaces = c.table.Snapshot()

	log.Info().
		Int("files", len(c.files)).
		Int("elements", len(c.out.Elements)).
		Int("namespaces", len(c.out.Namespaces)).
		Int("synthesized", c.synthesized).
		Int("materialized", c.materialized).
		Msg("compiled schema")
	return c.out, nil
}

func (c *compiler) ingest(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return xsderrors.NewCompileError(xsderrors.ErrReadFile, name, err)
	}
	doc, err := xsdtree.Parse(data)
	if errors.Is(err, xsdtree.ErrNotSchema) {
		log.Warn().Str("file", name).Err(err).Msg("skipping non-schema file")
		return nil
	}
	if err != nil {
		return xsderrors.NewCompileError(xsderrors.ErrXMLParse, name, err)
	}

	c.registerNamespaces(doc)
	c.index.AddDocument(name, doc)
	c.files = append(c.files, &sourceFile{
		name: name,
		doc:  doc,
		refs: make(map[string]contentmodel.RefOrigin),
	})
	log.Debug().
		Str("file", name).
		Str("targetNamespace", doc.TargetNamespace).
		Int("components", len(doc.Root.Children)).
		Msg("ingested schema file")
	return nil
}

func (c *compiler) registerNamespaces(doc *xsdtree.Document) {
	if tns := doc.TargetNamespace; tns != "" {
		c.table.ResolveHint(tns, doc.PrefixHint(tns))
	}
	for _, imp := range doc.Root.All(xsdtree.KindImport) {
		ns := imp.Attr("namespace")
		if ns == "" {
			continue
		}
		c.table.ResolveHint(ns, doc.PrefixHint(ns))
	}
}

func (c *compiler) compileFile(f *sourceFile) {
	tns := f.doc.TargetNamespace
	for _, decl := range f.doc.Root.All(xsdtree.KindElement) {
		c.compileElement(decl, tns, f.name)
	}
	c.index.CollectRefs(f.doc.Root, tns, c.table, f.refs)
}

func (c *compiler) qualify(uri, local string) string {
	if uri == "" {
		return local
	}
	return contentmodel.QName(c.table.Resolve(uri), local)
}

func (c *compiler) entry(qname string) *artifact.Element {
	el, ok := c.out.Elements[qname]
	if !ok {
		el = artifact.NewElement()
		c.out.Elements[qname] = el
	}
	return el
}

// compileElement records a named element declaration, top-level or local,
// and expands its type into children.
func (c *compiler) compileElement(decl *xsdtree.Node, tns, file string) {
	name := decl.Name()
	if name == "" {
		return
	}
	qname := c.qualify(tns, name)
	el := c.entry(qname)

	var def contentmodel.Def
	switch {
	case decl.Attr("type") != "":
		resolved, ok := c.index.ResolveType(decl, decl.Attr("type"), tns, file)
		if !ok {
			return
		}
		def = resolved
	case decl.First(xsdtree.KindComplexType) != nil:
		def = contentmodel.Def{Node: decl.First(xsdtree.KindComplexType), Namespace: tns, File: file}
	case decl.First(xsdtree.KindSimpleType) != nil:
		return
	default:
		c.typeless[qname] = true
		return
	}
	c.expandInto(qname, el, def)
}

// expandInto appends the children and attributes of a complex type to an
// entry. Each (element, type) pair contributes once, which also bounds the
// recursion through local declarations.
func (c *compiler) expandInto(qname string, el *artifact.Element, def contentmodel.Def) {
	if def.Node.Kind != xsdtree.KindComplexType {
		log.Debug().
			Str("element", qname).
			Stringer("kind", def.Node.Kind).
			Msg("type has no content model")
		return
	}
	key := contribution{qname: qname, typ: def.Node}
	if c.contributed[key] {
		return
	}
	c.contributed[key] = true
	c.typed[def.Node] = true

	el.Attributes.Merge(c.attrs.Extract(def))

	for _, p := range c.index.Expand(def) {
		child, ok := contentmodel.ResolveChildQName(p, c.table)
		if !ok {
			continue
		}
		el.Children = append(el.Children, child)
		if !p.IsRef() {
			c.compileElement(p.Node, p.Namespace, p.File)
		}
	}
}

// materializeRefs creates stub entries for references that no declaration
// produced, but only when the reference is used as a child somewhere.
func (c *compiler) materializeRefs() {
	used := make(map[string]bool)
	for _, el := range c.out.Elements {
		for _, child := range el.Children {
			used[child] = true
		}
	}
	for _, f := range c.files {
		for _, qname := range slices.Sorted(maps.Keys(f.refs)) {
			if _, exists := c.out.Elements[qname]; exists || !used[qname] {
				continue
			}
			c.out.Elements[qname] = artifact.NewElement()
			c.materialized++
			origin := f.refs[qname]
			log.Debug().
				Str("element", qname).
				Str("namespace", origin.Namespace).
				Str("file", f.name).
				Msg("materialized referenced element")
		}
	}
}
