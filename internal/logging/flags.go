package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	levelFlag  = "log-level"
	formatFlag = "log-format"
)

// RegisterFlags adds the --log-level and --log-format flags.
func RegisterFlags(flags *pflag.FlagSet, defaultLevel string) {
	flags.String(levelFlag, defaultLevel, `verbosity of logging ("trace", "debug", "info", "warn", "error")`)
	flags.String(formatFlag, "auto", `format of logs ("auto", "console", "json")`)
}

// ConfigureFromFlags installs a process logger writing to w as described by
// the flags added with RegisterFlags. The auto format picks console output
// when w is a terminal.
func ConfigureFromFlags(flags *pflag.FlagSet, w io.Writer) error {
	levelName, err := flags.GetString(levelFlag)
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil || level == zerolog.NoLevel {
		return fmt.Errorf("unknown log level: %s", levelName)
	}

	format, err := flags.GetString(formatFlag)
	if err != nil {
		return err
	}
	var console bool
	switch format {
	case "console":
		console = true
	case "json":
	case "auto":
		console = isTerminal(w)
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}

	SetGlobalLogger(New(w, level, console))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
