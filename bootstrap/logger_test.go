package bootstrap

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	level, logger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(level)
		log.Logger = logger
	})

	t.Run("known level", func(t *testing.T) {
		var buf bytes.Buffer
		setupLogger(&buf, "debug", false)
		require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

		log.Debug().Msg("hello")
		require.Contains(t, buf.String(), `"message":"hello"`)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		setupLogger(&buf, "loud", false)
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
		require.Contains(t, buf.String(), "unknown log level")
	})

	t.Run("empty level is info", func(t *testing.T) {
		var buf bytes.Buffer
		setupLogger(&buf, "", false)
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
		require.Empty(t, buf.String())
	})

	t.Run("pretty output", func(t *testing.T) {
		var buf bytes.Buffer
		setupLogger(&buf, "info", true)
		log.Info().Msg("hello")
		require.NotContains(t, buf.String(), `"message"`)
		require.Contains(t, buf.String(), "hello")
	})
}
