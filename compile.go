package ooxmlschema

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/jacoelho/ooxmlschema/internal/compiler"
)

// Compile compiles every *.xsd file directly inside dir of fsys into a
// schema. Compilation is best-effort: unresolved types degrade to empty
// entries. Unreadable files and malformed XML fail the whole run.
func Compile(fsys fs.FS, dir string, opts CompileOptions) (*Schema, error) {
	set, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	out, err := compiler.Build(fsys, dir, compiler.Config{Seeds: set})
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", dir, err)
	}
	return newSchema(out), nil
}

// CompileDir compiles the *.xsd files of a directory with default options.
func CompileDir(path string) (*Schema, error) {
	return Compile(os.DirFS(path), ".", NewCompileOptions())
}
