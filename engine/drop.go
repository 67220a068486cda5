package engine

import (
	"fmt"

	"gungi/game"
)

// IsValidDrop reports whether the hand piece may be dropped at the tile showing
// the given side. The turn player is not checked here.
func (e *Engine) IsValidDrop(b *game.Board, turn game.TurnState, id game.PieceID, to game.Coordinate, side game.Side) (bool, error) {
	e.metrics.AddQuery()
	p, ok := b.Piece(id)
	if !ok {
		return false, fmt.Errorf("drop piece %d: %w", id, game.ErrUnknownPiece)
	}
	if !p.InHand() {
		return false, fmt.Errorf("drop %s: %w", p, game.ErrNotInHand)
	}
	if !to.InBounds() {
		return false, nil
	}
	v := newView(b)
	identity := side.Identity(p.Type)

	valid := dropTarget(v, to, side) &&
		!violatesDoubleFileDrop(v, p.Owner, identity, to) &&
		(!game.HasDropAbility(identity, game.TerritoryDrop) || p.Owner.InTerritory(to.Rank)) &&
		!(turn.ForcedRearrangement && side == game.FrontSide)

	e.logger.Trace().
		Stringer("piece", p).
		Stringer("to", to).
		Stringer("side", side).
		Bool("valid", valid).
		Msg("drop")
	return valid, nil
}

// dropTarget reports whether a tile can receive a dropped piece of the given
// side: empty, or topped by an earth-link piece for that side below tier 3.
func dropTarget(v *view, at game.Coordinate, side game.Side) bool {
	top, ok := v.top(at)
	if !ok {
		return true
	}
	if top.Tier >= game.MaxTier {
		return false
	}
	link := game.EarthLinkFront
	if side == game.BackSide {
		link = game.EarthLinkBack
	}
	return game.HasDropAbility(top.Type, game.EarthLink) || game.HasDropAbility(top.Type, link)
}

func violatesDoubleFileDrop(v *view, c game.Color, identity game.PieceType, to game.Coordinate) bool {
	if !game.HasDropAbility(identity, game.DoubleFileDrop) {
		return false
	}
	for _, p := range v.onBoard {
		if p.Owner == c && p.Type == identity && p.Location.File == to.File {
			return true
		}
	}
	return false
}
