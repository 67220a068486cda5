package game

import "fmt"

const (
	BoardSize = 9 // Files and ranks per side
	MaxTier   = 3 // Highest tower a tile can hold
)

// Color identifies a player. Black sits on the low ranks and moves first.
type Color int

const (
	Black Color = iota
	White
)

func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// Direction is the forward multiplier applied to every template offset.
func (c Color) Direction() int {
	if c == Black {
		return 1
	}
	return -1
}

// Territory returns the inclusive rank band a player may drop territory-restricted pieces into.
func (c Color) Territory() (minRank, maxRank int) {
	if c == Black {
		return 0, 2
	}
	return BoardSize - 3, BoardSize - 1
}

func (c Color) InTerritory(rank int) bool {
	lo, hi := c.Territory()
	return rank >= lo && rank <= hi
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// Offset is a relative step in canonical forward orientation (+Rank is forward).
type Offset struct {
	File int
	Rank int
}

// Coordinate is a tile on the board, or Hand for pieces held off the board.
type Coordinate struct {
	File int
	Rank int
}

// Hand is the reserved location of every piece held in a player's hand.
var Hand = Coordinate{File: -1, Rank: -1}

func At(file, rank int) Coordinate {
	return Coordinate{File: file, Rank: rank}
}

func (c Coordinate) InBounds() bool {
	return c.File >= 0 && c.File < BoardSize && c.Rank >= 0 && c.Rank < BoardSize
}

// Add moves c by o scaled with the forward multiplier dir.
func (c Coordinate) Add(o Offset, dir int) Coordinate {
	return Coordinate{File: c.File + o.File*dir, Rank: c.Rank + o.Rank*dir}
}

func (c Coordinate) String() string {
	if c == Hand {
		return "hand"
	}
	return fmt.Sprintf("(%d,%d)", c.File, c.Rank)
}

// Less orders coordinates rank-major, used to give callers a stable result order.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Rank != o.Rank {
		return c.Rank < o.Rank
	}
	return c.File < o.File
}

// Chebyshev returns the king-move distance between two tiles.
func Chebyshev(a, b Coordinate) int {
	return max(abs(a.File-b.File), abs(a.Rank-b.Rank))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
