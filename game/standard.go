package game

type placement struct {
	Type PieceType
	File int
	Rank int
}

// Black's half of the opening deployment; White mirrors it through the centre.
var standardDeployment = []placement{
	{Bow, 1, 0}, {Captain, 3, 0}, {Commander, 4, 0}, {Captain, 5, 0}, {Bow, 7, 0},
	{Spy, 0, 1}, {HiddenDragon, 1, 1}, {Catapult, 3, 1}, {Fortress, 4, 1}, {Catapult, 5, 1}, {Prodigy, 7, 1}, {Spy, 8, 1},
	{Pawn, 0, 2}, {Samurai, 1, 2}, {Pawn, 2, 2}, {Gold, 3, 2}, {Pawn, 4, 2}, {Gold, 5, 2}, {Pawn, 6, 2}, {Samurai, 7, 2}, {Pawn, 8, 2},
}

var standardHand = []PieceType{Pawn, Pawn, Bow, Catapult}

// whiteIDOffset separates White's piece IDs from Black's.
const whiteIDOffset = 100

// StandardPieces returns the opening position as raw pieces.
func StandardPieces() []Piece {
	var pieces []Piece
	for _, color := range []Color{Black, White} {
		id := PieceID(1)
		if color == White {
			id = whiteIDOffset + 1
		}
		for _, pl := range standardDeployment {
			at := At(pl.File, pl.Rank)
			if color == White {
				at = At(BoardSize-1-pl.File, BoardSize-1-pl.Rank)
			}
			pieces = append(pieces, NewPiece(id, color, pl.Type, at, 1))
			id++
		}
		for _, t := range standardHand {
			pieces = append(pieces, NewHandPiece(id, color, t))
			id++
		}
	}
	return pieces
}

// StandardBoard builds the opening position. The deployment table is static, so
// a failure here is a broken build rather than a runtime condition.
func StandardBoard() *Board {
	b, err := NewBoard(StandardPieces()...)
	if err != nil {
		panic(err)
	}
	return b
}
