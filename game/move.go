package game

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNotTopOfTower = errors.New("piece is buried in its tower")
	ErrNoMovement    = errors.New("destination equals origin")
)

// Move relocates a board piece. Stack asks to land on an enemy top piece
// instead of capturing it; friendly tops are always stacked on.
type Move struct {
	PieceID PieceID
	To      Coordinate
	Stack   bool
}

// Drop places a hand piece showing the chosen side.
type Drop struct {
	PieceID PieceID
	To      Coordinate
	Side    Side
}

// Outcome describes what a move did besides relocating the mover.
type Outcome struct {
	Capture  bool
	Captured Piece // Attributes of the captured piece before it left the board
	Stacked  bool
	Betrayed []PieceID
}

// TakesCommander reports whether the move took an enemy commander out of its
// owner's hands, either by capture or by betraying the tower it was buried in.
// before is the board the move was applied to.
func (o Outcome) TakesCommander(before *Board) bool {
	if !o.Capture {
		return false
	}
	if o.Captured.Type == Commander {
		return true
	}
	for _, id := range o.Betrayed {
		if p, ok := before.Piece(id); ok && p.Type == Commander {
			return true
		}
	}
	return false
}

// Apply plays m on a copy of the board and returns the copy. The receiver is
// left untouched whether or not an error is returned.
func (b *Board) Apply(m Move) (*Board, Outcome, error) {
	var outcome Outcome
	mover, ok := b.Piece(m.PieceID)
	if !ok {
		return nil, outcome, fmt.Errorf("move piece %d: %w", m.PieceID, ErrUnknownPiece)
	}
	if mover.InHand() {
		return nil, outcome, fmt.Errorf("move %s: %w", mover, ErrNotOnBoard)
	}
	if !mover.TopOfTower {
		return nil, outcome, fmt.Errorf("move %s: %w", mover, ErrNotTopOfTower)
	}
	if !m.To.InBounds() {
		return nil, outcome, fmt.Errorf("move %s to %s: %w", mover, m.To, ErrOffBoard)
	}
	if m.To == mover.Location {
		return nil, outcome, fmt.Errorf("move %s: %w", mover, ErrNoMovement)
	}

	next := b.Copy()
	origin := b.Tower(mover.Location)
	if mover.Tier > 1 {
		exposed := origin[mover.Tier-2]
		exposed.TopOfTower = true
		next.set(exposed)
	}

	moved := mover
	moved.Location = m.To
	moved.TopOfTower = true

	top, occupied := b.Top(m.To)
	switch {
	case !occupied:
		moved.Tier = 1
	case top.Owner == mover.Owner || m.Stack || CaptureForbiddenByTwoFileMove(b, mover, m.To):
		if top.Tier >= MaxTier {
			return nil, outcome, fmt.Errorf("stack %s on %s: %w", mover, m.To, ErrTowerFull)
		}
		top.TopOfTower = false
		next.set(top)
		moved.Tier = top.Tier + 1
		outcome.Stacked = true
	default:
		moved.Tier = top.Tier
		outcome.Capture = true
		outcome.Captured = top
		next.set(toHand(top, mover.Owner))

		if HasPostMoveAbility(mover.Type, Betrayal) {
			for _, p := range b.Tower(m.To) {
				if p.ID == top.ID || p.Owner == mover.Owner {
					continue
				}
				p.Owner = mover.Owner
				p.Type = Flip(p.Type)
				next.set(p)
				outcome.Betrayed = append(outcome.Betrayed, p.ID)
			}
		}
	}
	next.set(moved)
	return next, outcome, nil
}

// ApplyDrop places a hand piece on a copy of the board. Drop legality is the
// rules engine's concern; only structural limits are enforced here.
func (b *Board) ApplyDrop(d Drop) (*Board, error) {
	p, ok := b.Piece(d.PieceID)
	if !ok {
		return nil, fmt.Errorf("drop piece %d: %w", d.PieceID, ErrUnknownPiece)
	}
	if !p.InHand() {
		return nil, fmt.Errorf("drop %s: %w", p, ErrNotInHand)
	}
	if !d.To.InBounds() {
		return nil, fmt.Errorf("drop %s to %s: %w", p, d.To, ErrOffBoard)
	}

	next := b.Copy()
	tower := b.Tower(d.To)
	if len(tower) >= MaxTier {
		return nil, fmt.Errorf("drop %s on %s: %w", p, d.To, ErrTowerFull)
	}
	if len(tower) > 0 {
		top := tower[len(tower)-1]
		top.TopOfTower = false
		next.set(top)
	}
	p.Type = d.Side.Identity(p.Type)
	p.Location = d.To
	p.Tier = len(tower) + 1
	p.TopOfTower = true
	next.set(p)
	return next, nil
}

// Place returns a copy of the board with p added on top of the tower at its
// location. p must carry an ID the board does not know yet; its tier and
// TopOfTower flag are derived.
func (b *Board) Place(p Piece) (*Board, error) {
	if _, ok := b.Piece(p.ID); ok {
		return nil, fmt.Errorf("place piece %d: %w", p.ID, ErrDuplicatePiece)
	}
	if !p.Type.Valid() {
		return nil, fmt.Errorf("place piece %d: %w", p.ID, ErrUnknownPieceType)
	}
	if !p.Location.InBounds() {
		return nil, fmt.Errorf("place piece %d at %s: %w", p.ID, p.Location, ErrOffBoard)
	}
	tower := b.Tower(p.Location)
	if len(tower) >= MaxTier {
		return nil, fmt.Errorf("place piece %d on %s: %w", p.ID, p.Location, ErrTowerFull)
	}

	next := b.Copy()
	if len(tower) > 0 {
		top := tower[len(tower)-1]
		top.TopOfTower = false
		next.set(top)
	}
	p.Tier = len(tower) + 1
	p.TopOfTower = true

	i := sort.Search(len(next.pieces), func(i int) bool { return next.pieces[i].ID >= p.ID })
	next.pieces = append(next.pieces, Piece{})
	copy(next.pieces[i+1:], next.pieces[i:])
	next.pieces[i] = p
	return next, nil
}

// NextID returns an ID no piece on the board uses.
func (b *Board) NextID() PieceID {
	if len(b.pieces) == 0 {
		return 1
	}
	return b.pieces[len(b.pieces)-1].ID + 1
}

// CaptureForbiddenByTwoFileMove reports whether a Bronze-class mover must stack
// rather than capture at to: betrayal would flip a buried enemy piece into a
// second copy of the mover on the same file.
func CaptureForbiddenByTwoFileMove(b *Board, mover Piece, to Coordinate) bool {
	if !HasPostMoveAbility(mover.Type, Betrayal) || !HasPreMoveAbility(mover.Type, TwoFileMove) {
		return false
	}
	tower := b.Tower(to)
	// The top piece is the one being captured, so it never flips
	for i := 0; i < len(tower)-1; i++ {
		if tower[i].Owner != mover.Owner && tower[i].Type == mover.Front() {
			return true
		}
	}
	return false
}

func toHand(p Piece, capturer Color) Piece {
	if !HasPostMoveAbility(p.Type, ForcedRecovery) {
		p.Owner = capturer
	}
	p.Type = FrontOf(p.Type)
	p.Location = Hand
	p.Tier = 0
	p.TopOfTower = false
	return p
}
