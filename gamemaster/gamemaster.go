package gamemaster

import (
	"errors"
	"fmt"

	"gungi/game"

	"github.com/google/uuid"
)

var (
	ErrGameOver     = errors.New("game is over - no actions allowed")
	ErrNotYourTurn  = errors.New("piece belongs to the other player")
	ErrIllegalMove  = errors.New("illegal move")
	ErrIllegalDrop  = errors.New("illegal drop")
	ErrDropRequired = errors.New("forced rearrangement requires a drop")
)

// Action is a move or a drop submitted by the turn player.
type Action struct {
	Type    game.ActionType
	PieceID game.PieceID
	To      game.Coordinate
	Stack   bool      // Moves only: land on an enemy top piece instead of capturing it
	Side    game.Side // Drops only
}

func MoveTo(id game.PieceID, to game.Coordinate) Action {
	return Action{Type: game.MoveAction, PieceID: id, To: to}
}

func StackOn(id game.PieceID, to game.Coordinate) Action {
	return Action{Type: game.MoveAction, PieceID: id, To: to, Stack: true}
}

func DropAt(id game.PieceID, to game.Coordinate, side game.Side) Action {
	return Action{Type: game.DropAction, PieceID: id, To: to, Side: side}
}

func (a Action) String() string {
	if a.Type == game.DropAction {
		return fmt.Sprintf("drop %d %s at %s", a.PieceID, a.Side, a.To)
	}
	if a.Stack {
		return fmt.Sprintf("stack %d on %s", a.PieceID, a.To)
	}
	return fmt.Sprintf("move %d to %s", a.PieceID, a.To)
}

type Result int

const (
	Ongoing Result = iota
	Checkmate
	CommanderCaptured
	Stalemate
	TurnLimit
)

func (r Result) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case CommanderCaptured:
		return "commander captured"
	case Stalemate:
		return "stalemate"
	case TurnLimit:
		return "turn limit"
	default:
		return "ongoing"
	}
}

// Decisive reports whether the result names a winner.
func (r Result) Decisive() bool {
	return r == Checkmate || r == CommanderCaptured
}

// State is an immutable view of a game between two actions.
type State struct {
	ID     uuid.UUID
	Board  *game.Board
	Turn   game.TurnState
	Ply    int
	Result Result
	Winner game.Color // Only meaningful when Result.Decisive()
}

func (s State) GameOver() bool {
	return s.Result != Ongoing
}

// UpdateGetter returns the next committed action and the state it produced, or
// a nil state when no update is pending or the game has ended.
type UpdateGetter func() (Action, *State)

type Master interface {
	Init() (State, UpdateGetter)
	Play(Action) error
}
