package game

import "fmt"

// PieceType is one face of a two-sided piece. Every type has exactly one front
// and one back counterpart; Commander and Gold are printed on both sides.
type PieceType int

const (
	Commander PieceType = iota
	Captain
	Pistol
	Samurai
	Pike
	Spy
	Clandestinite
	Catapult
	Lance
	Fortress
	Silver
	HiddenDragon
	DragonKing
	Prodigy
	Phoenix
	Bow
	Arrow
	Pawn
	Bronze
	Gold
	numPieceTypes
)

var pieceTypeNames = [numPieceTypes]string{
	Commander:     "Commander",
	Captain:       "Captain",
	Pistol:        "Pistol",
	Samurai:       "Samurai",
	Pike:          "Pike",
	Spy:           "Spy",
	Clandestinite: "Clandestinite",
	Catapult:      "Catapult",
	Lance:         "Lance",
	Fortress:      "Fortress",
	Silver:        "Silver",
	HiddenDragon:  "HiddenDragon",
	DragonKing:    "DragonKing",
	Prodigy:       "Prodigy",
	Phoenix:       "Phoenix",
	Bow:           "Bow",
	Arrow:         "Arrow",
	Pawn:          "Pawn",
	Bronze:        "Bronze",
	Gold:          "Gold",
}

// front -> back
var backSides = map[PieceType]PieceType{
	Commander:    Commander,
	Captain:      Pistol,
	Samurai:      Pike,
	Spy:          Clandestinite,
	Catapult:     Lance,
	Fortress:     Silver,
	HiddenDragon: DragonKing,
	Prodigy:      Phoenix,
	Bow:          Arrow,
	Pawn:         Bronze,
	Gold:         Gold,
}

// back -> front, derived once from backSides
var frontSides = func() map[PieceType]PieceType {
	fronts := make(map[PieceType]PieceType, len(backSides))
	for front, back := range backSides {
		fronts[back] = front
	}
	return fronts
}()

func (t PieceType) Valid() bool {
	return t >= 0 && t < numPieceTypes
}

func (t PieceType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("piece(%d)", int(t))
	}
	return pieceTypeNames[t]
}

// IsFront reports whether t is the front face of its pair.
func (t PieceType) IsFront() bool {
	_, ok := backSides[t]
	return ok
}

func FrontOf(t PieceType) PieceType {
	if t.IsFront() {
		return t
	}
	return frontSides[t]
}

func BackOf(t PieceType) PieceType {
	if t.IsFront() {
		return backSides[t]
	}
	return t
}

// Flip turns a piece over, as betrayal does.
func Flip(t PieceType) PieceType {
	if t == FrontOf(t) {
		return BackOf(t)
	}
	return FrontOf(t)
}

// PieceTypes lists every identity in declaration order.
func PieceTypes() []PieceType {
	types := make([]PieceType, 0, numPieceTypes)
	for t := PieceType(0); t < numPieceTypes; t++ {
		types = append(types, t)
	}
	return types
}

type PieceID int

// Piece is a flat snapshot of every attribute the rules read.
type Piece struct {
	ID         PieceID
	Owner      Color
	Type       PieceType
	Location   Coordinate
	Tier       int // 1..3 on the board, 0 in hand
	TopOfTower bool
}

// NewPiece places a piece on the board. TopOfTower is settled by NewBoard.
func NewPiece(id PieceID, owner Color, t PieceType, at Coordinate, tier int) Piece {
	return Piece{ID: id, Owner: owner, Type: t, Location: at, Tier: tier}
}

func NewHandPiece(id PieceID, owner Color, t PieceType) Piece {
	return Piece{ID: id, Owner: owner, Type: FrontOf(t), Location: Hand}
}

func (p Piece) Direction() int {
	return p.Owner.Direction()
}

func (p Piece) InHand() bool {
	return p.Location == Hand
}

func (p Piece) Front() PieceType {
	return FrontOf(p.Type)
}

func (p Piece) Back() PieceType {
	return BackOf(p.Type)
}

func (p Piece) String() string {
	if p.InHand() {
		return fmt.Sprintf("%s %s#%d in hand", p.Owner, p.Type, p.ID)
	}
	return fmt.Sprintf("%s %s#%d at %s tier %d", p.Owner, p.Type, p.ID, p.Location, p.Tier)
}
