package game

import "errors"

var (
	ErrUnknownPieceType = errors.New("unknown piece type")
	ErrInvalidTier      = errors.New("invalid tier")
	ErrUnknownPiece     = errors.New("unknown piece")
	ErrDuplicatePiece   = errors.New("duplicate piece id")
	ErrOccupied         = errors.New("tile and tier already occupied")
	ErrCommanderCount   = errors.New("expected exactly one commander per color")
	ErrNotOnBoard       = errors.New("piece is not on the board")
	ErrNotInHand        = errors.New("piece is not in hand")
	ErrOffBoard         = errors.New("coordinate outside the board")
	ErrTowerFull        = errors.New("tower already at maximum height")
)
