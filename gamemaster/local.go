package gamemaster

import (
	"fmt"

	"gungi/engine"
	"gungi/game"
	"gungi/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type Option func(l *Local)

type update struct {
	action Action
	state  State
}

// Local runs one game in process: it owns the live board, commits actions the
// rules engine accepts and publishes every commit on an update channel.
type Local struct {
	id       uuid.UUID
	engine   *engine.Engine
	logger   zerolog.Logger
	maxTurns int
	start    *game.Board
	state    State
	updateCh chan update
	gameOver bool
}

func WithEngine(e *engine.Engine) Option {
	return func(l *Local) {
		if e != nil {
			l.engine = e
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(l *Local) {
		if turns > 0 {
			l.maxTurns = turns
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(l *Local) {
		l.logger = logger
	}
}

func WithID(id uuid.UUID) Option {
	return func(l *Local) {
		l.id = id
	}
}

func New(board *game.Board, options ...Option) *Local {
	l := &Local{ // Default values
		id:       uuid.New(),
		engine:   engine.New(),
		logger:   log.Logger,
		maxTurns: meta.MAX_TURNS,
		start:    board,
	}
	for _, option := range options {
		option(l)
	}
	l.logger = l.logger.With().Str("game", l.id.String()).Logger()
	return l
}

func NewStandard(options ...Option) *Local {
	return New(game.StandardBoard(), options...)
}

func (l *Local) Engine() *engine.Engine {
	return l.engine
}

func (l *Local) Init() (State, UpdateGetter) {
	l.state = State{
		ID:    l.id,
		Board: l.start,
		Turn:  game.TurnState{Player: game.Black},
	}
	l.gameOver = false
	if inCheck, err := l.engine.IsInCheck(l.start, game.Black); err == nil {
		l.state.Turn.InCheck = inCheck
	} else {
		l.logger.Warn().Err(err).Msg("cannot evaluate opening check")
	}
	// Every action commits at most one update and the game ends at maxTurns
	l.updateCh = make(chan update, l.maxTurns+1)

	l.logger.Info().Msgf("%s is starting", l.state.Turn.Player)
	return l.state, func() (Action, *State) {
		select {
		case u, ok := <-l.updateCh:
			if !ok { // Game over
				return Action{}, nil
			}
			return u.action, &u.state
		default:
			return Action{}, nil
		}
	}
}

// State returns the current state.
func (l *Local) State() State {
	return l.state
}

func (l *Local) Play(a Action) error {
	if l.gameOver {
		return ErrGameOver
	}
	if l.state.Board == nil {
		return fmt.Errorf("play %s: game not initialised", a)
	}

	var (
		next      *game.Board
		outcome   game.Outcome
		err       error
		rearrange bool
	)
	switch a.Type {
	case game.MoveAction:
		next, outcome, err = l.move(a)
		rearrange = outcome.Capture && game.HasPostMoveAbility(outcome.Captured.Type, game.ForcedRearrangement)
	case game.DropAction:
		next, err = l.drop(a)
	default:
		err = fmt.Errorf("action type %d: %w", a.Type, ErrIllegalMove)
	}
	if err != nil {
		return err
	}

	player := l.state.Turn.Player
	state := State{ID: l.id, Board: next, Ply: l.state.Ply + 1}

	switch {
	case outcome.TakesCommander(l.state.Board):
		state.Result = CommanderCaptured
		state.Winner = player
	case rearrange:
		state.Turn = game.TurnState{Player: player, ForcedRearrangement: true}
		can, err := l.hasAction(next, state.Turn)
		if err != nil {
			return err
		}
		if !can {
			l.logger.Debug().Msgf("%s has no rearrangement drop, turn passes", player)
			state.Turn = game.TurnState{Player: player.Opponent()}
		}
	default:
		state.Turn = game.TurnState{Player: player.Opponent()}
	}

	if !state.GameOver() {
		inCheck, err := l.engine.IsInCheck(next, state.Turn.Player)
		if err != nil {
			return err
		}
		state.Turn.InCheck = inCheck
		can, err := l.hasAction(next, state.Turn)
		if err != nil {
			return err
		}
		switch {
		case !can && inCheck:
			state.Result = Checkmate
			state.Winner = state.Turn.Player.Opponent()
		case !can:
			state.Result = Stalemate
		case state.Ply >= l.maxTurns:
			state.Result = TurnLimit
		}
	}

	l.state = state
	l.logger.Info().
		Int("ply", state.Ply).
		Stringer("player", player).
		Stringer("action", a).
		Bool("capture", outcome.Capture).
		Bool("check", state.Turn.InCheck).
		Msg("committed")

	l.updateCh <- update{action: a, state: state}
	if state.GameOver() {
		l.gameOver = true
		close(l.updateCh)
		if state.Result.Decisive() {
			l.logger.Info().Msgf("%s wins by %s", state.Winner, state.Result)
		} else {
			l.logger.Info().Msgf("draw by %s", state.Result)
		}
	}
	return nil
}

func (l *Local) move(a Action) (*game.Board, game.Outcome, error) {
	board, turn := l.state.Board, l.state.Turn
	if turn.ForcedRearrangement {
		return nil, game.Outcome{}, ErrDropRequired
	}
	p, ok := board.Piece(a.PieceID)
	if !ok {
		return nil, game.Outcome{}, fmt.Errorf("%s: %w", a, game.ErrUnknownPiece)
	}
	if p.Owner != turn.Player {
		return nil, game.Outcome{}, fmt.Errorf("%s: %w", a, ErrNotYourTurn)
	}
	legal, err := l.engine.LegalDestinations(board, a.PieceID, true)
	if err != nil {
		return nil, game.Outcome{}, err
	}
	if !slices.Contains(legal, a.To) {
		return nil, game.Outcome{}, fmt.Errorf("%s: %w", a, ErrIllegalMove)
	}

	// Completed enemy towers can only be captured
	stack := a.Stack
	if top, ok := board.Top(a.To); !ok || top.Owner == p.Owner || top.Tier >= game.MaxTier {
		stack = false
	}

	next, outcome, err := board.Apply(game.Move{PieceID: a.PieceID, To: a.To, Stack: stack})
	if err != nil {
		return nil, game.Outcome{}, err
	}
	// Legal destinations assume a capture; stacking leaves the top piece in play
	if stack {
		inCheck, err := l.engine.IsInCheck(next, p.Owner)
		if err != nil {
			return nil, game.Outcome{}, err
		}
		if inCheck {
			return nil, game.Outcome{}, fmt.Errorf("%s exposes commander: %w", a, ErrIllegalMove)
		}
	}
	return next, outcome, nil
}

func (l *Local) drop(a Action) (*game.Board, error) {
	board, turn := l.state.Board, l.state.Turn
	p, ok := board.Piece(a.PieceID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", a, game.ErrUnknownPiece)
	}
	if p.Owner != turn.Player {
		return nil, fmt.Errorf("%s: %w", a, ErrNotYourTurn)
	}
	next, err := l.validDrop(board, turn, p, a.To, a.Side)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, fmt.Errorf("%s: %w", a, ErrIllegalDrop)
	}
	return next, nil
}

// validDrop returns the board after the drop, or nil when the drop is illegal.
// A rearrangement drop stays inside the dropper's territory and no drop may
// leave the dropper's commander in check.
func (l *Local) validDrop(board *game.Board, turn game.TurnState, p game.Piece, to game.Coordinate, side game.Side) (*game.Board, error) {
	ok, err := l.engine.IsValidDrop(board, turn, p.ID, to, side)
	if err != nil || !ok {
		return nil, err
	}
	if turn.ForcedRearrangement && !p.Owner.InTerritory(to.Rank) {
		return nil, nil
	}
	next, err := board.ApplyDrop(game.Drop{PieceID: p.ID, To: to, Side: side})
	if err != nil {
		return nil, err
	}
	inCheck, err := l.engine.IsInCheck(next, p.Owner)
	if err != nil || inCheck {
		return nil, err
	}
	return next, nil
}

// hasAction reports whether the turn player has any legal move or drop.
func (l *Local) hasAction(board *game.Board, turn game.TurnState) (bool, error) {
	actions, err := l.actions(board, turn, 1)
	return len(actions) > 0, err
}

// LegalActions enumerates every action the turn player may take.
func (l *Local) LegalActions() ([]Action, error) {
	if l.gameOver || l.state.Board == nil {
		return nil, nil
	}
	return l.actions(l.state.Board, l.state.Turn, 0)
}

// actions enumerates legal actions, stopping once limit are found. A limit of
// zero enumerates all of them.
func (l *Local) actions(board *game.Board, turn game.TurnState, limit int) ([]Action, error) {
	var actions []Action
	full := func() bool { return limit > 0 && len(actions) >= limit }

	if !turn.ForcedRearrangement {
		for _, p := range board.BoardPieces() {
			if p.Owner != turn.Player || !p.TopOfTower {
				continue
			}
			legal, err := l.engine.LegalDestinations(board, p.ID, true)
			if err != nil {
				return nil, err
			}
			for _, to := range legal {
				actions = append(actions, MoveTo(p.ID, to))
				if full() {
					return actions, nil
				}
			}
		}
	}

	// Hand pieces of one type are interchangeable
	tried := make(map[game.PieceType]bool)
	for _, p := range board.HandPieces(turn.Player) {
		if tried[p.Type] {
			continue
		}
		tried[p.Type] = true
		for _, side := range []game.Side{game.FrontSide, game.BackSide} {
			for rank := 0; rank < game.BoardSize; rank++ {
				for file := 0; file < game.BoardSize; file++ {
					to := game.At(file, rank)
					next, err := l.validDrop(board, turn, p, to, side)
					if err != nil {
						return nil, err
					}
					if next == nil {
						continue
					}
					actions = append(actions, DropAt(p.ID, to, side))
					if full() {
						return actions, nil
					}
				}
			}
		}
	}
	return actions, nil
}
