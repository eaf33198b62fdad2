package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	require.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	require.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	require.Equal(t, zerolog.InfoLevel, parseLevel(""))
	require.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
}

func TestInitOnce(t *testing.T) {
	var buf bytes.Buffer
	l := Init(Options{Level: "debug", Output: &buf})
	l.Info().Msg("first")
	require.Contains(t, buf.String(), "first")

	// A second Init must not rebuild the logger.
	var other bytes.Buffer
	Init(Options{Level: "debug", Output: &other})
	Get().Info().Msg("second")
	require.Contains(t, buf.String(), "second")
	require.Empty(t, other.String())
}
