package logging

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestConfigureFromFlags(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	tests := []struct {
		name    string
		args    []string
		wantErr string
		shown   bool
	}{
		{name: "defaults", shown: false},
		{name: "debug json", args: []string{"--log-level", "DEBUG", "--log-format", "json"}, shown: true},
		{name: "unknown level", args: []string{"--log-level", "loud"}, wantErr: "unknown log level"},
		{name: "empty level", args: []string{"--log-level", ""}, wantErr: "unknown log level"},
		{name: "unknown format", args: []string{"--log-format", "xml"}, wantErr: "unknown log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			RegisterFlags(flags, "warn")
			require.NoError(t, flags.Parse(tt.args))

			var buf bytes.Buffer
			err := ConfigureFromFlags(flags, &buf)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			Debug().Msg("probe")
			require.Equal(t, tt.shown, bytes.Contains(buf.Bytes(), []byte("probe")))
		})
	}
}
