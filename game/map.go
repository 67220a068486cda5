package game

import "fmt"

// MoveTemplate holds the raw movement of one identity at one tier, in canonical
// forward orientation.
type MoveTemplate struct {
	Single []Offset // Step moves; intermediate tiles must be passable
	Jump   []Offset // Relocations that ignore anything in between
	Line   []Offset // Ray directions, extended to the board edge
}

func (m MoveTemplate) clone() MoveTemplate {
	return MoveTemplate{
		Single: append([]Offset(nil), m.Single...),
		Jump:   append([]Offset(nil), m.Jump...),
		Line:   append([]Offset(nil), m.Line...),
	}
}

// TemplateFor returns a private copy of the movement of t at tier.
func TemplateFor(t PieceType, tier int) (MoveTemplate, error) {
	tiers, ok := templates[t]
	if !ok {
		return MoveTemplate{}, fmt.Errorf("template for %s: %w", t, ErrUnknownPieceType)
	}
	if tier < 1 || tier > MaxTier {
		return MoveTemplate{}, fmt.Errorf("template for %s tier %d: %w", t, tier, ErrInvalidTier)
	}
	return tiers[tier-1].clone(), nil
}

func offsets(pairs ...int) []Offset {
	if len(pairs)%2 != 0 {
		panic("offsets: odd number of coordinates")
	}
	out := make([]Offset, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Offset{File: pairs[i], Rank: pairs[i+1]})
	}
	return out
}

func join(sets ...[]Offset) []Offset {
	var out []Offset
	for _, set := range sets {
		out = append(out, set...)
	}
	return out
}

// GLOBAL DATA. Shared building blocks for the tables below.
var (
	orthogonal = offsets(0, 1, 1, 0, 0, -1, -1, 0)
	diagonal   = offsets(1, 1, 1, -1, -1, -1, -1, 1)
	king       = join(orthogonal, diagonal)
	goldStep   = offsets(-1, 1, 0, 1, 1, 1, -1, 0, 1, 0, 0, -1)
	silverStep = offsets(-1, 1, 0, 1, 1, 1, -1, -1, 1, -1)
	orthoTwo   = offsets(0, 2, 2, 0, 0, -2, -2, 0)
	diagTwo    = offsets(2, 2, 2, -2, -2, -2, -2, 2)
	knightFwd  = offsets(-1, 2, 1, 2)
)

// templates is indexed by identity, then tier-1.
var templates = map[PieceType][MaxTier]MoveTemplate{
	Commander: {
		{Single: king},
		{Single: king},
		{Single: king},
	},
	Captain: {
		{Single: goldStep},
		{Single: king},
		{Single: join(king, orthoTwo)},
	},
	Pistol: {
		{Single: join(diagonal, offsets(0, 1))},
		{Single: king},
		{Single: king, Jump: join(knightFwd, offsets(-2, 1, 2, 1))},
	},
	Samurai: {
		{Single: offsets(-1, 1, 0, 1, 1, 1, 0, -1)},
		{Single: offsets(-1, 1, 0, 1, 1, 1, 0, -1, 0, 2)},
		{Single: diagonal, Line: offsets(0, 1)},
	},
	Pike: {
		{Single: offsets(0, 1, 0, 2, 0, -1)},
		{Single: offsets(0, 1, 0, 2, 0, -1, 1, 0, -1, 0)},
		{Single: offsets(1, 0, -1, 0), Line: offsets(0, 1, 0, -1)},
	},
	Spy: {
		{Single: offsets(0, 1, 1, -1, -1, -1)},
		{Single: offsets(0, -1), Jump: knightFwd},
		{Single: offsets(0, 1, 0, -1), Jump: join(knightFwd, offsets(-2, 1, 2, 1))},
	},
	Clandestinite: {
		{Single: diagonal},
		{Single: join(diagonal, offsets(2, 2, -2, 2))},
		{Single: offsets(1, -1, -1, -1), Line: offsets(1, 1, -1, 1)},
	},
	Catapult: {
		{},
		{},
		{},
	},
	Lance: {
		{Line: offsets(0, 1)},
		{Single: diagonal},
		{Single: diagonal},
	},
	Fortress: {
		{Single: king},
		{Single: king},
		{Single: king},
	},
	Silver: {
		{Single: silverStep},
		{Single: join(silverStep, offsets(0, -1))},
		{Single: king},
	},
	HiddenDragon: {
		{Line: orthogonal},
		{Single: diagonal, Line: orthogonal},
		{Single: diagonal, Jump: diagTwo, Line: orthogonal},
	},
	DragonKing: {
		{Line: diagonal},
		{Single: orthogonal, Line: diagonal},
		{Line: king},
	},
	Prodigy: {
		{Single: diagonal},
		{Line: diagonal},
		{Single: orthogonal, Line: diagonal},
	},
	Phoenix: {
		{Single: king},
		{Single: king, Jump: orthoTwo},
		{Single: king, Jump: join(orthoTwo, diagTwo)},
	},
	Bow: {
		{Single: offsets(0, -1), Jump: offsets(-1, 2, 0, 2, 1, 2)},
		{Single: offsets(0, -1, 1, -1, -1, -1), Jump: offsets(-2, 2, 0, 2, 2, 2)},
		{Single: offsets(0, -1, 1, -1, -1, -1), Jump: offsets(-2, 2, -1, 2, 0, 2, 1, 2, 2, 2)},
	},
	Arrow: {
		{Single: offsets(0, 1, 1, -1, 0, -1, -1, -1)},
		{Single: offsets(0, 1, 2, -2, 0, -1, -2, -2)},
		{Single: offsets(0, 1, 1, -1, 2, -2, 0, -1, -1, -1, -2, -2)},
	},
	Pawn: {
		{Single: offsets(0, 1)},
		{Single: offsets(0, 1, 1, 0, -1, 0)},
		{Single: offsets(-1, 1, 0, 1, 1, 1, 1, 0, -1, 0)},
	},
	Bronze: {
		{Single: offsets(1, 0, -1, 0)},
		{Single: offsets(1, 0, -1, 0, 2, 0, -2, 0)},
		{Single: offsets(1, 0, -1, 0, 2, 0, -2, 0, 1, 1, -1, 1)},
	},
	Gold: {
		{Single: goldStep},
		{Single: goldStep},
		{Single: king},
	},
}
