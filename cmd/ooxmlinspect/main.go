package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jzelinskie/stringz"
	"github.com/spf13/cobra"

	"github.com/jacoelho/ooxmlschema"
	log "github.com/jacoelho/ooxmlschema/internal/logging"
)

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type result struct {
	QName string           `json:"qname"`
	Depth int              `json:"depth"`
	Role  ooxmlschema.Role `json:"role"`
}

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

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		depth      string
		asJSON     bool
		schemaPath string
	)
	cmd := &cobra.Command{
		Use:   "ooxmlinspect <qname>",
		Short: "Classify an element as block or inline content",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 || args[0] == "" {
				return usageError{errors.New("exactly one qualified element name is required")}
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
			path := stringz.DefaultEmpty(schemaPath, ooxmlschema.DefaultPath())
			schema, err := ooxmlschema.LoadFile(path)
			if err != nil {
				return err
			}

			res := result{QName: args[0], Depth: parseDepth(depth)}
			res.Role = schema.Classify(res.QName, res.Depth)
			log.Debug().Str("qname", res.QName).Int("depth", res.Depth).Str("role", string(res.Role)).Msg("classified")

			if asJSON {
				enc := json.NewEncoder(stdout)
				return enc.Encode(res)
			}
			return writef(stdout, "%s\n", res.Role)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVar(&depth, "depth", strconv.Itoa(ooxmlschema.DefaultDepth), "levels of descendants to inspect")
	flags.BoolVar(&asJSON, "json", false, "print the result as JSON")
	flags.StringVar(&schemaPath, "schema", "", "compiled schema artifact (default $"+ooxmlschema.EnvSchemaPath+" or schema.transitional.json)")
	log.RegisterFlags(flags, "warn")
	return cmd
}

// parseDepth falls back to the default depth for anything that is not an integer.
func parseDepth(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ooxmlschema.DefaultDepth
	}
	return n
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
