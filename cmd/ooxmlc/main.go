package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacoelho/ooxmlschema"
	log "github.com/jacoelho/ooxmlschema/internal/logging"
	"github.com/jacoelho/ooxmlschema/internal/seeds"
	"github.com/jacoelho/ooxmlschema/pkg/artifact"
)

// usageError marks failures caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var ue usageError
	if errors.As(err, &ue) {
		if writeErr := writef(stderr, "error: %v\n\n%s", err, cmd.UsageString()); writeErr != nil {
			return 1
		}
		return 2
	}
	if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
		return 1
	}
	return 1
}

type options struct {
	output         string
	seedsPath      string
	cpuProfilePath string
	memProfilePath string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "ooxmlc <xsd-dir>",
		Short: "Compile a directory of OOXML schemas into a lookup artifact",
		Long: "Compiles every *.xsd file in a directory into the element lookup model\n" +
			"(namespaces, legal children, attributes) and writes it as JSON.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{errors.New("exactly one schema directory argument is required")}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := log.ConfigureFromFlags(cmd.Flags(), stderr); err != nil {
				return usageError{err}
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return compile(args[0], opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", artifact.FileName, `artifact path, "-" for stdout`)
	flags.StringVar(&opts.seedsPath, "seeds", "", "YAML file with extra namespace prefixes and pass-through children")
	flags.StringVar(&opts.cpuProfilePath, "cpuprofile", "", "write CPU profile to file")
	flags.StringVar(&opts.memProfilePath, "memprofile", "", "write memory profile to file")
	log.RegisterFlags(flags, "info")
	return cmd
}

func compile(dir string, opts options, stdout, stderr io.Writer) error {
	if opts.cpuProfilePath != "" {
		stopCPUProfile, profErr := startCPUProfile(opts.cpuProfilePath)
		if profErr != nil {
			return profErr
		}
		defer func() {
			if stopErr := stopCPUProfile(); stopErr != nil {
				_ = writef(stderr, "error stopping CPU profile: %v\n", stopErr)
			}
		}()
	}
	if opts.memProfilePath != "" {
		defer func() {
			if memErr := writeMemProfile(opts.memProfilePath); memErr != nil {
				_ = writef(stderr, "error writing memory profile: %v\n", memErr)
			}
		}()
	}

	compileOpts := ooxmlschema.NewCompileOptions()
	if opts.seedsPath != "" {
		set, err := seeds.LoadFile(opts.seedsPath)
		if err != nil {
			return err
		}
		compileOpts = compileOpts.WithNamespaces(set.Namespaces).WithPassThrough(set.PassThrough...)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	schema, err := ooxmlschema.Compile(os.DirFS(dir), ".", compileOpts)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		return schema.Write(stdout)
	}
	if err := schema.WriteFile(opts.output); err != nil {
		return err
	}
	stats := schema.GetSchemaStats()
	return writef(stdout, "wrote %s: %d elements, %d namespaces\n", opts.output, stats.TotalElements, stats.Namespaces)
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
