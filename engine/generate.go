package engine

import (
	"fmt"

	"gungi/game"
)

// candidates holds raw destinations per movement category, before any filter.
type candidates struct {
	single []game.Coordinate
	jump   []game.Coordinate
	lines  [][]game.Coordinate // One ray per direction, nearest tile first
}

// destinations generates and filters p's destinations without the check filter.
// Threat scans pass obstructed=false so path blocking is ignored.
func (e *Engine) destinations(v *view, p game.Piece, obstructed bool) ([]game.Coordinate, error) {
	e.metrics.AddGeneration()
	raw, err := e.generate(v, p)
	if err != nil {
		return nil, err
	}
	return e.filter(v, p, raw, obstructed), nil
}

func (e *Engine) generate(v *view, p game.Piece) (candidates, error) {
	var c candidates
	movement := effectiveType(v, p)
	tier := effectiveTier(v, p)
	template, err := game.TemplateFor(movement, tier)
	if err != nil {
		return c, fmt.Errorf("generate %s: %w", p, err)
	}

	dir := p.Direction()
	for _, offset := range template.Single {
		c.single = append(c.single, p.Location.Add(offset, dir))
	}
	for _, offset := range template.Jump {
		c.jump = append(c.jump, p.Location.Add(offset, dir))
	}
	for _, offset := range template.Line {
		ray := make([]game.Coordinate, 0, game.BoardSize-1)
		at := p.Location
		for i := 1; i < game.BoardSize; i++ {
			at = at.Add(offset, dir)
			ray = append(ray, at)
		}
		c.lines = append(c.lines, ray)
	}
	return c, nil
}

// effectiveType is Gold when an enemy sits directly beneath p.
func effectiveType(v *view, p game.Piece) game.PieceType {
	if below, ok := v.below(p); ok && below.Owner != p.Owner {
		return game.Gold
	}
	return p.Type
}

// effectiveTier raises p's tier by one when a friendly supporter grants mobile
// range expansion.
func effectiveTier(v *view, p game.Piece) int {
	if p.Tier >= game.MaxTier || game.HasPreMoveAbility(p.Type, game.CannotMobileRangeExpansion) {
		return p.Tier
	}
	for _, s := range v.onBoard {
		if s.ID == p.ID || s.Owner != p.Owner {
			continue
		}
		if game.HasPreMoveAbility(s.Type, game.MobileRangeExpansionRadial) &&
			game.Chebyshev(s.Location, p.Location) <= 2 {
			return p.Tier + 1
		}
		if game.HasPreMoveAbility(s.Type, game.MobileRangeExpansionLine) &&
			s.Location.File == p.Location.File &&
			(s.Location.Rank-p.Location.Rank)*p.Direction() > 0 {
			return p.Tier + 1
		}
	}
	return p.Tier
}
