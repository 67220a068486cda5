package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, pieces ...Piece) *Board {
	t.Helper()
	b, err := NewBoard(pieces...)
	require.NoError(t, err)
	return b
}

func mustPiece(t *testing.T, b *Board, id PieceID) Piece {
	t.Helper()
	p, ok := b.Piece(id)
	require.True(t, ok, "piece %d should exist", id)
	return p
}

func TestApply(t *testing.T) {
	t.Run("moves to an empty tile", func(t *testing.T) {
		b := mustBoard(t, NewPiece(1, Black, Pawn, At(4, 4), 1))
		before := b.Pieces()

		next, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 5)})
		require.NoError(t, err)
		require.False(t, outcome.Capture)
		require.False(t, outcome.Stacked)

		p := mustPiece(t, next, 1)
		require.Equal(t, At(4, 5), p.Location)
		require.Equal(t, 1, p.Tier)
		require.True(t, p.TopOfTower)
		require.Empty(t, cmp.Diff(before, b.Pieces()), "Receiver should be untouched")
	})

	t.Run("stacks on a friendly top", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Pawn, At(4, 4), 1),
			NewPiece(2, Black, Gold, At(4, 5), 1),
		)
		next, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 5)})
		require.NoError(t, err)
		require.True(t, outcome.Stacked)
		require.Equal(t, 2, mustPiece(t, next, 1).Tier)
		require.False(t, mustPiece(t, next, 2).TopOfTower)
	})

	t.Run("promotes the exposed piece", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Gold, At(4, 4), 1),
			NewPiece(2, Black, Pawn, At(4, 4), 2),
		)
		next, _, err := b.Apply(Move{PieceID: 2, To: At(4, 5)})
		require.NoError(t, err)
		require.True(t, mustPiece(t, next, 1).TopOfTower)
		require.Equal(t, 1, mustPiece(t, next, 2).Tier)
	})

	t.Run("captures an enemy top", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Gold, At(4, 4), 1),
			NewPiece(2, White, Samurai, At(4, 5), 1),
			NewPiece(3, White, Bronze, At(4, 5), 2),
		)
		next, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 5)})
		require.NoError(t, err)
		require.True(t, outcome.Capture)
		require.Equal(t, PieceID(3), outcome.Captured.ID)
		require.Equal(t, Bronze, outcome.Captured.Type, "Outcome keeps the captured attributes")

		gold := mustPiece(t, next, 1)
		require.Equal(t, 2, gold.Tier, "Capturer adopts the captured tier")
		require.True(t, gold.TopOfTower)

		captured := mustPiece(t, next, 3)
		require.True(t, captured.InHand())
		require.Equal(t, Black, captured.Owner)
		require.Equal(t, Pawn, captured.Type, "Captured pieces return to their front")
		require.Equal(t, 0, captured.Tier)
		require.False(t, captured.TopOfTower)

		require.Equal(t, White, mustPiece(t, next, 2).Owner, "Only betrayal turns buried pieces")
	})

	t.Run("forced recovery returns to the owner", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Gold, At(4, 4), 1),
			NewPiece(2, White, Lance, At(4, 5), 1),
		)
		next, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 5)})
		require.NoError(t, err)
		require.Equal(t, Lance, outcome.Captured.Type)

		lance := mustPiece(t, next, 2)
		require.Equal(t, White, lance.Owner)
		require.Equal(t, Catapult, lance.Type)
		require.Len(t, next.HandPieces(White), 1)
	})

	t.Run("betrayal flips the tower", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Bronze, At(3, 5), 1),
			NewPiece(2, White, Samurai, At(4, 5), 1),
			NewPiece(3, White, Gold, At(4, 5), 2),
		)
		next, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 5)})
		require.NoError(t, err)
		require.True(t, outcome.Capture)
		require.Equal(t, []PieceID{2}, outcome.Betrayed)

		betrayed := mustPiece(t, next, 2)
		require.Equal(t, Black, betrayed.Owner)
		require.Equal(t, Pike, betrayed.Type)
		require.Equal(t, 2, mustPiece(t, next, 1).Tier)
	})

	t.Run("two file conflict forces a stack", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Bronze, At(3, 5), 1),
			NewPiece(2, White, Pawn, At(4, 5), 1),
			NewPiece(3, White, Gold, At(4, 5), 2),
		)
		require.True(t, CaptureForbiddenByTwoFileMove(b, mustPiece(t, b, 1), At(4, 5)))

		next, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 5)})
		require.NoError(t, err)
		require.True(t, outcome.Stacked)
		require.False(t, outcome.Capture)
		require.Equal(t, 3, mustPiece(t, next, 1).Tier)
		require.Equal(t, White, mustPiece(t, next, 2).Owner)
	})

	t.Run("chosen stack on an enemy", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Gold, At(4, 4), 1),
			NewPiece(2, White, Pawn, At(4, 5), 1),
		)
		next, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 5), Stack: true})
		require.NoError(t, err)
		require.True(t, outcome.Stacked)
		require.False(t, mustPiece(t, next, 2).InHand())
	})

	t.Run("full tower", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Pawn, At(4, 4), 1),
			NewPiece(2, Black, Gold, At(4, 5), 1),
			NewPiece(3, Black, Silver, At(4, 5), 2),
			NewPiece(4, Black, Samurai, At(4, 5), 3),
		)
		_, _, err := b.Apply(Move{PieceID: 1, To: At(4, 5)})
		require.ErrorIs(t, err, ErrTowerFull)
	})

	errorTests := []struct {
		name string
		move Move
		err  error
	}{
		{"unknown piece", Move{PieceID: 9, To: At(0, 1)}, ErrUnknownPiece},
		{"hand piece", Move{PieceID: 3, To: At(0, 1)}, ErrNotOnBoard},
		{"buried piece", Move{PieceID: 1, To: At(0, 1)}, ErrNotTopOfTower},
		{"off board", Move{PieceID: 2, To: At(0, -1)}, ErrOffBoard},
		{"no movement", Move{PieceID: 2, To: At(0, 0)}, ErrNoMovement},
	}
	b := mustBoard(t,
		NewPiece(1, Black, Gold, At(0, 0), 1),
		NewPiece(2, Black, Pawn, At(0, 0), 2),
		NewHandPiece(3, Black, Pawn),
	)
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := b.Apply(tt.move)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestApplyDrop(t *testing.T) {
	b := mustBoard(t,
		NewHandPiece(1, Black, Bow),
		NewPiece(2, Black, Gold, At(2, 2), 1),
		NewPiece(3, White, Gold, At(5, 5), 1),
		NewPiece(4, White, Gold, At(5, 5), 2),
		NewPiece(5, White, Gold, At(5, 5), 3),
	)

	t.Run("drops the chosen side", func(t *testing.T) {
		next, err := b.ApplyDrop(Drop{PieceID: 1, To: At(3, 3), Side: BackSide})
		require.NoError(t, err)
		p := mustPiece(t, next, 1)
		require.Equal(t, Arrow, p.Type)
		require.Equal(t, 1, p.Tier)
		require.True(t, p.TopOfTower)
		require.True(t, mustPiece(t, b, 1).InHand(), "Receiver should be untouched")
	})

	t.Run("drops on a tower", func(t *testing.T) {
		next, err := b.ApplyDrop(Drop{PieceID: 1, To: At(2, 2), Side: FrontSide})
		require.NoError(t, err)
		require.Equal(t, 2, mustPiece(t, next, 1).Tier)
		require.False(t, mustPiece(t, next, 2).TopOfTower)
	})

	t.Run("full tower", func(t *testing.T) {
		_, err := b.ApplyDrop(Drop{PieceID: 1, To: At(5, 5)})
		require.ErrorIs(t, err, ErrTowerFull)
	})

	t.Run("board piece", func(t *testing.T) {
		_, err := b.ApplyDrop(Drop{PieceID: 2, To: At(3, 3)})
		require.ErrorIs(t, err, ErrNotInHand)
	})

	t.Run("off board", func(t *testing.T) {
		_, err := b.ApplyDrop(Drop{PieceID: 1, To: At(3, 9)})
		require.ErrorIs(t, err, ErrOffBoard)
	})
}

func TestPlace(t *testing.T) {
	b := mustBoard(t,
		NewPiece(1, Black, Gold, At(2, 2), 1),
		NewPiece(5, White, Gold, At(6, 6), 1),
	)
	require.Equal(t, PieceID(6), b.NextID())

	next, err := b.Place(Piece{ID: 3, Owner: White, Type: Pawn, Location: At(2, 2)})
	require.NoError(t, err)
	p := mustPiece(t, next, 3)
	require.Equal(t, 2, p.Tier)
	require.True(t, p.TopOfTower)
	require.False(t, mustPiece(t, next, 1).TopOfTower)
	require.Len(t, b.Pieces(), 2, "Receiver should be untouched")

	_, err = NewBoard(next.Pieces()...)
	require.NoError(t, err)

	_, err = b.Place(Piece{ID: 1, Owner: White, Type: Pawn, Location: At(3, 3)})
	require.ErrorIs(t, err, ErrDuplicatePiece)
}

func TestOutcomeTakesCommander(t *testing.T) {
	t.Run("capture", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Gold, At(4, 4), 1),
			NewPiece(2, White, Commander, At(4, 5), 1),
		)
		_, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 5)})
		require.NoError(t, err)
		require.True(t, outcome.TakesCommander(b))
	})

	t.Run("betrayal of a buried commander", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Bronze, At(3, 4), 1),
			NewPiece(2, White, Commander, At(4, 4), 1),
			NewPiece(3, White, Gold, At(4, 4), 2),
		)
		next, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 4)})
		require.NoError(t, err)
		require.Equal(t, []PieceID{2}, outcome.Betrayed)
		require.True(t, outcome.TakesCommander(b))

		commander := mustPiece(t, next, 2)
		require.Equal(t, Black, commander.Owner)
		require.Equal(t, Commander, commander.Type)
	})

	t.Run("ordinary capture", func(t *testing.T) {
		b := mustBoard(t,
			NewPiece(1, Black, Bronze, At(3, 5), 1),
			NewPiece(2, White, Samurai, At(4, 5), 1),
			NewPiece(3, White, Gold, At(4, 5), 2),
		)
		_, outcome, err := b.Apply(Move{PieceID: 1, To: At(4, 5)})
		require.NoError(t, err)
		require.False(t, outcome.TakesCommander(b))
	})

	t.Run("no capture", func(t *testing.T) {
		require.False(t, Outcome{Stacked: true}.TakesCommander(mustBoard(t)))
	})
}
