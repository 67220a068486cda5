package experiments

import (
	"path/filepath"
	"testing"

	"gungi/engine"
	"gungi/game"

	"github.com/stretchr/testify/require"
)

func TestPerft(t *testing.T) {
	e := engine.New()
	b := game.StandardBoard()

	t.Run("depth one counts every legal move", func(t *testing.T) {
		want := 0
		for _, p := range b.BoardPieces() {
			if p.Owner != game.Black || !p.TopOfTower {
				continue
			}
			legal, err := e.LegalDestinations(b, p.ID, true)
			require.NoError(t, err)
			want += len(legal)
		}

		got, err := Perft(e, b, game.Black, PerftConfig{Depth: 1})
		require.NoError(t, err)
		require.Equal(t, want, got.Nodes)
		require.Zero(t, got.Drops)
	})

	t.Run("drops add nodes", func(t *testing.T) {
		moves, err := Perft(e, b, game.Black, PerftConfig{Depth: 1})
		require.NoError(t, err)
		all, err := Perft(e, b, game.Black, PerftConfig{Depth: 1, Drops: true})
		require.NoError(t, err)
		require.Greater(t, all.Nodes, moves.Nodes)
		require.Equal(t, all.Nodes-moves.Nodes, all.Drops)
	})

	t.Run("depth zero is the root", func(t *testing.T) {
		got, err := Perft(e, b, game.Black, PerftConfig{})
		require.NoError(t, err)
		require.Equal(t, 1, got.Nodes)
	})

	t.Run("writes a record", func(t *testing.T) {
		root := t.TempDir()
		_, err := Perft(e, b, game.Black, PerftConfig{Depth: 1, Position: "standard", ResultsDir: root})
		require.NoError(t, err)
		files, err := filepath.Glob(filepath.Join(root, "perft", "*", "perft_records.csv"))
		require.NoError(t, err)
		require.Len(t, files, 1)
	})
}

func TestPerftCheckmate(t *testing.T) {
	b, err := game.NewBoard(
		game.NewPiece(1, game.Black, game.Commander, game.At(4, 0), 1),
		game.NewPiece(2, game.Black, game.HiddenDragon, game.At(8, 7), 1),
		game.NewPiece(3, game.Black, game.HiddenDragon, game.At(5, 3), 1),
		game.NewPiece(4, game.White, game.Commander, game.At(0, 8), 1),
	)
	require.NoError(t, err)

	got, err := Perft(engine.New(), b, game.Black, PerftConfig{Depth: 1})
	require.NoError(t, err)
	require.Positive(t, got.Checks)
	require.Positive(t, got.Checkmate)
	require.LessOrEqual(t, got.Checkmate, got.Checks)
}

func TestPerftBetrayedCommander(t *testing.T) {
	b, err := game.NewBoard(
		game.NewPiece(1, game.Black, game.Commander, game.At(0, 0), 1),
		game.NewPiece(2, game.Black, game.Bronze, game.At(3, 4), 1),
		game.NewPiece(3, game.White, game.Commander, game.At(4, 4), 1),
		game.NewPiece(4, game.White, game.Gold, game.At(4, 4), 2),
	)
	require.NoError(t, err)
	e := engine.New()

	one, err := Perft(e, b, game.Black, PerftConfig{Depth: 1})
	require.NoError(t, err)
	require.Positive(t, one.Captures)

	two, err := Perft(e, b, game.Black, PerftConfig{Depth: 2})
	require.NoError(t, err, "Should not expand the line where the commander was betrayed")
	require.Positive(t, two.Nodes)
}
