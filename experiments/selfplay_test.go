package experiments

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelfPlay(t *testing.T) {
	root := t.TempDir()
	cfg := SelfPlayConfig{Games: 2, Seed: 1, MaxTurns: 10, ResultsDir: root, Metrics: true}

	records, err := SelfPlay(cfg)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for i, r := range records {
		require.Equal(t, i+1, r.Game)
		require.Equal(t, cfg.Seed+uint64(i), r.Seed)
		require.NotEmpty(t, r.ID)
		require.NotEqual(t, "ongoing", r.Reason)
		require.LessOrEqual(t, r.TotalTurns, cfg.MaxTurns)
		require.Positive(t, r.Queries)
		require.Positive(t, r.Simulations)
	}

	files, err := filepath.Glob(filepath.Join(root, "selfplay", "*", "game_records.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	t.Run("seeded runs repeat", func(t *testing.T) {
		cfg := SelfPlayConfig{Games: 1, Seed: 9, MaxTurns: 8}
		first, err := SelfPlay(cfg)
		require.NoError(t, err)
		second, err := SelfPlay(cfg)
		require.NoError(t, err)
		require.Equal(t, first[0].Reason, second[0].Reason)
		require.Equal(t, first[0].TotalTurns, second[0].TotalTurns)
		require.Equal(t, first[0].Winner, second[0].Winner)
	})
}
