package engine

import (
	"gungi/game"
)

// violatesTwoFileMove applies to pieces with both betrayal and two-file move.
// Such a piece may not share a file with a friendly piece of its own type, and
// may not land where a forced capture would betray a buried enemy piece into a
// second one.
func violatesTwoFileMove(v *view, p game.Piece, to game.Coordinate) bool {
	if !game.HasPostMoveAbility(p.Type, game.Betrayal) || !game.HasPreMoveAbility(p.Type, game.TwoFileMove) {
		return false
	}
	for _, other := range v.onBoard {
		if other.ID != p.ID && other.Owner == p.Owner && other.Type == p.Type && other.Location.File == to.File {
			return true
		}
	}

	tower := v.tower(to)
	if len(tower) < game.MaxTier || tower[len(tower)-1].Owner == p.Owner {
		return false
	}
	for _, buried := range tower[:len(tower)-1] {
		if buried.Owner != p.Owner && buried.Type != p.Type && game.BackOf(buried.Type) == p.Type {
			return true
		}
	}
	return false
}
