package engine

import (
	"gungi/game"

	"golang.org/x/exp/slices"
)

func (e *Engine) threatCount(v *view, c game.Color) (int, error) {
	e.metrics.AddThreatScan()
	commander, err := v.board.Commander(c)
	if err != nil {
		return 0, err
	}
	tower := v.tower(commander.Location)
	buried, err := isBuried(commander, tower)
	if err != nil {
		return 0, err
	}
	if buried {
		return 0, nil
	}

	count := 0
	if dangerFromBelow(commander, tower) {
		count++
	}
	if !commander.TopOfTower {
		return count, nil
	}
	for _, enemy := range v.enemyTops(c) {
		reach, err := e.destinations(v, enemy, true)
		if err != nil {
			return 0, err
		}
		if slices.Contains(reach, commander.Location) {
			count++
		}
	}
	return count, nil
}

// enemyThreats lists the enemy pieces that could reach the commander ignoring
// path obstruction: every enemy top piece, plus the piece the mover uncovers.
func (e *Engine) enemyThreats(v *view, commander, mover game.Piece) ([]game.PieceID, error) {
	e.metrics.AddThreatScan()
	suspects := v.enemyTops(commander.Owner)
	if exposed, ok := v.below(mover); ok && exposed.Owner != commander.Owner {
		suspects = append(suspects, exposed)
	}

	var threats []game.PieceID
	for _, enemy := range suspects {
		if enemy.Location == commander.Location {
			threats = append(threats, enemy.ID)
			continue
		}
		reach, err := e.destinations(v, enemy, false)
		if err != nil {
			return nil, err
		}
		if slices.Contains(reach, commander.Location) {
			threats = append(threats, enemy.ID)
		}
	}
	return threats, nil
}

// actualThreats narrows threats to the enemy top pieces that share the
// commander's tile or still reach it with obstruction applied.
func (e *Engine) actualThreats(v *view, commander game.Piece, threats []game.PieceID) ([]game.PieceID, error) {
	var actual []game.PieceID
	for _, id := range threats {
		enemy, ok := v.board.Piece(id)
		if !ok || enemy.InHand() || !enemy.TopOfTower || enemy.Owner == commander.Owner {
			continue
		}
		if enemy.Location == commander.Location {
			actual = append(actual, id)
			continue
		}
		reach, err := e.destinations(v, enemy, true)
		if err != nil {
			return nil, err
		}
		if slices.Contains(reach, commander.Location) {
			actual = append(actual, id)
		}
	}
	return actual, nil
}
