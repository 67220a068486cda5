package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type DropAbility int

const (
	DoubleFileDrop DropAbility = iota // No two friendly pieces of the dropped type on one file
	TerritoryDrop                     // Drop only inside the player's territory
	EarthLink                         // Either side may be dropped on top of this piece
	EarthLinkFront                    // Front drops may land on top of this piece
	EarthLinkBack                     // Back drops may land on top of this piece
)

type PreMoveAbility int

const (
	TwoFileMove PreMoveAbility = iota
	CannotBeStacked
	CannotMobileRangeExpansion
	MobileRangeExpansionRadial
	MobileRangeExpansionLine
)

type PostMoveAbility int

const (
	Betrayal PostMoveAbility = iota
	ForcedRecovery
	ForcedRearrangement
)

type OtherMoveAbility int

const (
	NoOtherMove OtherMoveAbility = iota
	Tier1Exchange
	Substitution
)

// AbilitySet is the immutable rule profile of one piece identity.
type AbilitySet struct {
	Drop      []DropAbility
	PreMove   []PreMoveAbility
	PostMove  []PostMoveAbility
	OtherMove OtherMoveAbility
}

func (a AbilitySet) HasDrop(d DropAbility) bool {
	return slices.Contains(a.Drop, d)
}

func (a AbilitySet) HasPreMove(p PreMoveAbility) bool {
	return slices.Contains(a.PreMove, p)
}

func (a AbilitySet) HasPostMove(p PostMoveAbility) bool {
	return slices.Contains(a.PostMove, p)
}

func (a AbilitySet) clone() AbilitySet {
	return AbilitySet{
		Drop:      append([]DropAbility(nil), a.Drop...),
		PreMove:   append([]PreMoveAbility(nil), a.PreMove...),
		PostMove:  append([]PostMoveAbility(nil), a.PostMove...),
		OtherMove: a.OtherMove,
	}
}

var abilities = map[PieceType]AbilitySet{
	Commander: {},
	Captain:   {OtherMove: Tier1Exchange},
	Pistol:    {},
	Samurai:   {},
	Pike:      {},
	Spy:       {OtherMove: Substitution},
	Clandestinite: {
		Drop: []DropAbility{EarthLinkBack},
	},
	Catapult: {
		Drop:    []DropAbility{TerritoryDrop, EarthLink},
		PreMove: []PreMoveAbility{CannotMobileRangeExpansion, MobileRangeExpansionRadial},
	},
	Lance: {
		PostMove: []PostMoveAbility{ForcedRecovery, ForcedRearrangement},
	},
	Fortress: {
		Drop:    []DropAbility{TerritoryDrop},
		PreMove: []PreMoveAbility{CannotBeStacked, CannotMobileRangeExpansion},
	},
	Silver: {
		PreMove: []PreMoveAbility{MobileRangeExpansionLine},
	},
	HiddenDragon: {
		Drop: []DropAbility{TerritoryDrop},
	},
	DragonKing: {},
	Prodigy: {
		Drop: []DropAbility{TerritoryDrop},
	},
	Phoenix: {},
	Bow: {
		Drop: []DropAbility{EarthLinkFront},
	},
	Arrow: {},
	Pawn: {
		Drop: []DropAbility{DoubleFileDrop},
	},
	Bronze: {
		Drop:     []DropAbility{DoubleFileDrop},
		PreMove:  []PreMoveAbility{TwoFileMove},
		PostMove: []PostMoveAbility{Betrayal},
	},
	Gold: {},
}

// AbilitiesFor looks up the ability profile of t.
func AbilitiesFor(t PieceType) (AbilitySet, error) {
	set, ok := abilities[t]
	if !ok {
		return AbilitySet{}, fmt.Errorf("abilities for %s: %w", t, ErrUnknownPieceType)
	}
	return set.clone(), nil
}

// abilitiesOf is the allocation-free lookup used on hot paths; t must be valid.
func abilitiesOf(t PieceType) AbilitySet {
	return abilities[t]
}

func HasDropAbility(t PieceType, d DropAbility) bool {
	return abilitiesOf(t).HasDrop(d)
}

func HasPreMoveAbility(t PieceType, p PreMoveAbility) bool {
	return abilitiesOf(t).HasPreMove(p)
}

func HasPostMoveAbility(t PieceType, p PostMoveAbility) bool {
	return abilitiesOf(t).HasPostMove(p)
}
