package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
)

// Board is a snapshot of every piece on the board and in both hands. A Board is
// never mutated after construction: Apply and ApplyDrop return new boards.
type Board struct {
	pieces []Piece // Sorted by ID
}

type towerKey struct {
	at   Coordinate
	tier int
}

// NewBoard validates a set of pieces and settles their TopOfTower flags.
func NewBoard(pieces ...Piece) (*Board, error) {
	b := &Board{pieces: make([]Piece, len(pieces))}
	copy(b.pieces, pieces)
	sort.Slice(b.pieces, func(i, j int) bool { return b.pieces[i].ID < b.pieces[j].ID })

	occupied := make(map[towerKey]bool)
	heights := make(map[Coordinate]int)
	for i := range b.pieces {
		p := &b.pieces[i]
		if i > 0 && b.pieces[i-1].ID == p.ID {
			return nil, fmt.Errorf("piece %d: %w", p.ID, ErrDuplicatePiece)
		}
		if !p.Type.Valid() {
			return nil, fmt.Errorf("piece %d: %w", p.ID, ErrUnknownPieceType)
		}
		if p.InHand() {
			p.Tier = 0
			p.TopOfTower = false
			continue
		}
		if !p.Location.InBounds() {
			return nil, fmt.Errorf("piece %d at %s: %w", p.ID, p.Location, ErrOffBoard)
		}
		if p.Tier < 1 || p.Tier > MaxTier {
			return nil, fmt.Errorf("piece %d tier %d: %w", p.ID, p.Tier, ErrInvalidTier)
		}
		key := towerKey{at: p.Location, tier: p.Tier}
		if occupied[key] {
			return nil, fmt.Errorf("piece %d at %s tier %d: %w", p.ID, p.Location, p.Tier, ErrOccupied)
		}
		occupied[key] = true
		heights[p.Location] = max(heights[p.Location], p.Tier)
	}

	// Towers are stacked from the ground up
	for at, height := range heights {
		for tier := 1; tier <= height; tier++ {
			if !occupied[towerKey{at: at, tier: tier}] {
				return nil, fmt.Errorf("tower at %s missing tier %d: %w", at, tier, ErrInvalidTier)
			}
		}
	}
	for i := range b.pieces {
		p := &b.pieces[i]
		p.TopOfTower = !p.InHand() && heights[p.Location] == p.Tier
	}
	return b, nil
}

// Copy returns an independent board.
func (b *Board) Copy() *Board {
	pieces := make([]Piece, len(b.pieces))
	copy(pieces, b.pieces)
	return &Board{pieces: pieces}
}

// Pieces returns a copy of every piece, on the board and in hand.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, len(b.pieces))
	copy(out, b.pieces)
	return out
}

func (b *Board) Piece(id PieceID) (Piece, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return Piece{}, false
	}
	return b.pieces[i], true
}

// BoardPieces returns every piece not held in a hand.
func (b *Board) BoardPieces() []Piece {
	var out []Piece
	for _, p := range b.pieces {
		if !p.InHand() {
			out = append(out, p)
		}
	}
	return out
}

func (b *Board) HandPieces(c Color) []Piece {
	var out []Piece
	for _, p := range b.pieces {
		if p.InHand() && p.Owner == c {
			out = append(out, p)
		}
	}
	return out
}

// Tower returns the pieces at a tile ordered by tier, bottom first.
func (b *Board) Tower(at Coordinate) []Piece {
	if at == Hand {
		return nil
	}
	var out []Piece
	for _, p := range b.pieces {
		if p.Location == at {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tier < out[j].Tier })
	return out
}

// Top returns the piece currently movable or capturable at a tile.
func (b *Board) Top(at Coordinate) (Piece, bool) {
	tower := b.Tower(at)
	if len(tower) == 0 {
		return Piece{}, false
	}
	return tower[len(tower)-1], true
}

func (b *Board) Height(at Coordinate) int {
	return len(b.Tower(at))
}

// Commander finds the single commander of c on the board.
func (b *Board) Commander(c Color) (Piece, error) {
	var found []Piece
	for _, p := range b.pieces {
		if p.Type == Commander && p.Owner == c && !p.InHand() {
			found = append(found, p)
		}
	}
	if len(found) != 1 {
		return Piece{}, fmt.Errorf("%s has %d commanders: %w", c, len(found), ErrCommanderCount)
	}
	return found[0], nil
}

// Hash fingerprints every attribute of every piece.
func (b *Board) Hash() uint64 {
	hasher := fnv.New64a()
	for _, p := range b.pieces {
		for _, v := range []int64{
			int64(p.ID), int64(p.Owner), int64(p.Type),
			int64(p.Location.File), int64(p.Location.Rank), int64(p.Tier),
		} {
			binary.Write(hasher, binary.LittleEndian, v)
		}
		binary.Write(hasher, binary.LittleEndian, p.TopOfTower)
	}
	return hasher.Sum64()
}

func (b *Board) indexOf(id PieceID) int {
	i := sort.Search(len(b.pieces), func(i int) bool { return b.pieces[i].ID >= id })
	if i < len(b.pieces) && b.pieces[i].ID == id {
		return i
	}
	return -1
}

// set overwrites the stored piece with the same ID. Only used on fresh copies.
func (b *Board) set(p Piece) {
	b.pieces[b.indexOf(p.ID)] = p
}

// TurnState is what the orchestration layer knows about the current turn.
type TurnState struct {
	Player              Color
	ForcedRearrangement bool // The turn player owes a back-side drop
	InCheck             bool
}
