package engine

import (
	"gungi/game"
)

func (e *Engine) filter(v *view, p game.Piece, c candidates, obstructed bool) []game.Coordinate {
	var out []game.Coordinate
	for _, to := range c.single {
		if !landable(v, p, to) || violatesTwoFileMove(v, p, to) {
			continue
		}
		if obstructed && pathBlocked(v, p, to, true) {
			continue
		}
		out = append(out, to)
	}
	for _, to := range c.jump {
		if landable(v, p, to) && !violatesTwoFileMove(v, p, to) {
			out = append(out, to)
		}
	}
	for _, ray := range c.lines {
		for _, to := range ray {
			if !landable(v, p, to) {
				continue
			}
			if obstructed && (pathBlocked(v, p, to, false) || friendlyTopped(v, p.Owner, to)) {
				continue
			}
			out = append(out, to)
		}
	}
	return out
}

// landable applies the board edge and tower composition rules to one tile.
func landable(v *view, p game.Piece, to game.Coordinate) bool {
	if !to.InBounds() {
		return false
	}
	top, ok := v.top(to)
	if !ok {
		return true
	}
	switch {
	case top.Owner == p.Owner && top.Tier >= game.MaxTier:
		return false
	case top.Owner == p.Owner && top.Type == p.Type:
		return false
	case game.HasPreMoveAbility(top.Type, game.CannotBeStacked):
		return false
	}
	return true
}

func friendlyTopped(v *view, c game.Color, at game.Coordinate) bool {
	top, ok := v.top(at)
	return ok && top.Owner == c
}

// pathBlocked walks from p toward to and reports whether a tile strictly
// between them stops the move. Each step moves one tile along every axis that
// has not yet reached the destination, so offsets off the eight compass lines
// still terminate. A zero-length path is never blocked.
func pathBlocked(v *view, p game.Piece, to game.Coordinate, ignoreFriendlies bool) bool {
	at := p.Location
	if at == to {
		return false
	}
	for {
		at = game.At(at.File+sign(to.File-at.File), at.Rank+sign(to.Rank-at.Rank))
		if at == to {
			return false
		}
		for _, blocker := range v.tower(at) {
			if !ignoreFriendlies || blocker.Owner != p.Owner {
				return true
			}
			if blocker.TopOfTower && game.HasPreMoveAbility(blocker.Type, game.CannotBeStacked) {
				return true
			}
		}
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
