package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetGlobalLogger(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	var buf bytes.Buffer
	SetGlobalLogger(New(&buf, zerolog.DebugLevel, false))

	Debug().Str("file", "wml.xsd").Msg("ingested")
	require.Contains(t, buf.String(), `"file":"wml.xsd"`)
	require.Contains(t, buf.String(), `"message":"ingested"`)
	require.Same(t, &Logger, zerolog.DefaultContextLogger)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel, false)

	logger.Info().Msg("hidden")
	require.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}
