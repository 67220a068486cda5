package engine

import (
	"fmt"

	"gungi/game"

	"golang.org/x/exp/slices"
)

// excludeCheckViolations keeps the destinations after which p's commander
// cannot be captured. Every hypothetical move is played on a copy of the board.
func (e *Engine) excludeCheckViolations(v *view, p game.Piece, destinations []game.Coordinate) ([]game.Coordinate, error) {
	commander, err := v.board.Commander(p.Owner)
	if err != nil {
		return nil, err
	}
	tower := v.tower(commander.Location)
	isCommander := p.ID == commander.ID

	buried, err := isBuried(commander, tower)
	if err != nil {
		return nil, err
	}
	if buried && p.Location != commander.Location {
		return destinations, nil
	}
	if !isCommander && dangerFromBelow(commander, tower) {
		return []game.Coordinate{}, nil
	}

	var threats []game.PieceID
	inCheck := false
	if isCommander {
		count, err := e.threatCount(v, p.Owner)
		if err != nil {
			return nil, err
		}
		inCheck = count > 0
	} else {
		threats, err = e.enemyThreats(v, commander, p)
		if err != nil {
			return nil, err
		}
		if len(threats) == 0 {
			return destinations, nil
		}
	}

	safe := make([]game.Coordinate, 0, len(destinations))
	for _, to := range normalize(destinations) {
		ok, err := e.safeMove(v, p, commander, to, threats, inCheck)
		if err != nil {
			return nil, err
		}
		if ok {
			safe = append(safe, to)
		}
	}
	return safe, nil
}

// safeMove plays p to the destination on a copy and re-evaluates the threats.
func (e *Engine) safeMove(v *view, p, commander game.Piece, to game.Coordinate, threats []game.PieceID, inCheck bool) (bool, error) {
	isCommander := p.ID == commander.ID
	if isCommander && inCheck && friendlyTopped(v, p.Owner, to) {
		return false, nil
	}

	after, outcome, err := v.board.Apply(game.Move{PieceID: p.ID, To: to})
	if err != nil {
		return false, fmt.Errorf("simulate %s to %s: %w", p, to, err)
	}
	e.metrics.AddSimulation()
	av := newView(after)
	commander, _ = after.Piece(commander.ID)
	moved, _ := after.Piece(p.ID)

	if !isCommander && !commander.TopOfTower && moved.Location == commander.Location {
		return true, nil
	}
	if isCommander {
		if dangerFromBelow(commander, av.tower(commander.Location)) {
			return false, nil
		}
		threats, err = e.enemyThreats(av, commander, moved)
		if err != nil {
			return false, err
		}
	}
	if len(threats) == 0 {
		return true, nil
	}

	actual, err := e.actualThreats(av, commander, threats)
	if err != nil {
		return false, err
	}
	if len(actual) == 0 {
		return true, nil
	}
	if outcome.Capture && game.HasPostMoveAbility(outcome.Captured.Type, game.ForcedRearrangement) {
		return e.rearrangementResolves(av, commander, rearrangementDrops(after, commander.Owner), actual)
	}

	e.logger.Trace().
		Stringer("piece", p).
		Stringer("to", to).
		Int("threats", len(actual)).
		Msg("move leaves commander in check")
	return false, nil
}

// rearrangementResolves tries every tile of the commander's territory that a
// back-side drop could reach, dropping each of identities there for the
// commander's owner, and reports whether any placement stops all threats.
func (e *Engine) rearrangementResolves(v *view, commander game.Piece, identities []game.PieceType, threats []game.PieceID) (bool, error) {
	lo, hi := commander.Owner.Territory()
	for _, identity := range identities {
		for rank := lo; rank <= hi; rank++ {
			for file := 0; file < game.BoardSize; file++ {
				at := game.At(file, rank)
				if !dropTarget(v, at, game.BackSide) || violatesDoubleFileDrop(v, commander.Owner, identity, at) {
					continue
				}
				e.metrics.AddRearranging()
				dropped, err := v.board.Place(game.Piece{
					ID:       v.board.NextID(),
					Owner:    commander.Owner,
					Type:     identity,
					Location: at,
				})
				if err != nil {
					return false, fmt.Errorf("rearrange %s at %s: %w", identity, at, err)
				}
				dv := newView(dropped)
				c, _ := dropped.Piece(commander.ID)
				remaining, err := e.actualThreats(dv, c, threats)
				if err != nil {
					return false, err
				}
				if len(remaining) == 0 {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

// rearrangementDrops lists the back faces c could show in a rearrangement
// drop, one per distinct hand piece type. The captured piece is not among
// them: it goes to its recovering owner or to the capturer's hand like any
// other capture.
func rearrangementDrops(b *game.Board, c game.Color) []game.PieceType {
	var out []game.PieceType
	seen := make(map[game.PieceType]bool)
	for _, p := range b.HandPieces(c) {
		if seen[p.Type] {
			continue
		}
		seen[p.Type] = true
		out = append(out, game.BackSide.Identity(p.Type))
	}
	return out
}

// isBuried reports whether the commander sits below the top of its tower with
// no enemy directly touching it.
func isBuried(commander game.Piece, tower []game.Piece) (bool, error) {
	if commander.TopOfTower {
		return false, nil
	}
	var neighbours []game.Piece
	switch commander.Tier {
	case 1, 3:
		if len(tower) < 2 {
			return false, fmt.Errorf("%s in tower of %d: %w", commander, len(tower), game.ErrInvalidTier)
		}
		neighbours = tower[1:2]
	case 2:
		neighbours = []game.Piece{tower[0]}
		if len(tower) > 2 {
			neighbours = append(neighbours, tower[2])
		}
	default:
		return false, fmt.Errorf("%s: %w", commander, game.ErrInvalidTier)
	}
	return !slices.ContainsFunc(neighbours, func(n game.Piece) bool { return n.Owner != commander.Owner }), nil
}

func dangerFromBelow(commander game.Piece, tower []game.Piece) bool {
	if commander.Tier < 2 || len(tower) < commander.Tier-1 {
		return false
	}
	return tower[commander.Tier-2].Owner != commander.Owner
}
