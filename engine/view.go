package engine

import (
	"gungi/game"

	"golang.org/x/exp/slices"
)

// view indexes a board by tile for the duration of one query.
type view struct {
	board   *game.Board
	onBoard []game.Piece
	towers  map[game.Coordinate][]game.Piece
}

func newView(b *game.Board) *view {
	v := &view{
		board:   b,
		onBoard: b.BoardPieces(),
		towers:  make(map[game.Coordinate][]game.Piece),
	}
	for _, p := range v.onBoard {
		v.towers[p.Location] = append(v.towers[p.Location], p)
	}
	for _, tower := range v.towers {
		slices.SortFunc(tower, func(a, b game.Piece) int { return a.Tier - b.Tier })
	}
	return v
}

func (v *view) tower(at game.Coordinate) []game.Piece {
	return v.towers[at]
}

func (v *view) top(at game.Coordinate) (game.Piece, bool) {
	tower := v.towers[at]
	if len(tower) == 0 {
		return game.Piece{}, false
	}
	return tower[len(tower)-1], true
}

// below returns the piece directly under p in its tower.
func (v *view) below(p game.Piece) (game.Piece, bool) {
	if p.Tier < 2 {
		return game.Piece{}, false
	}
	tower := v.towers[p.Location]
	if len(tower) < p.Tier-1 {
		return game.Piece{}, false
	}
	return tower[p.Tier-2], true
}

// enemyTops returns the top pieces c's opponent could move this turn.
func (v *view) enemyTops(c game.Color) []game.Piece {
	var out []game.Piece
	for _, p := range v.onBoard {
		if p.Owner != c && p.TopOfTower {
			out = append(out, p)
		}
	}
	return out
}
