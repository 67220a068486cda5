package game

// ActionType represents the kind of action a player takes on their turn.
type ActionType int

const (
	MoveAction ActionType = iota
	DropAction
)

func (a ActionType) String() string {
	if a == DropAction {
		return "drop"
	}
	return "move"
}

// Side selects which face of a hand piece is played.
type Side int

const (
	FrontSide Side = iota
	BackSide
)

func (s Side) String() string {
	if s == BackSide {
		return "back"
	}
	return "front"
}

// Identity returns the face of t shown when played on side s.
func (s Side) Identity(t PieceType) PieceType {
	if s == BackSide {
		return BackOf(t)
	}
	return FrontOf(t)
}
