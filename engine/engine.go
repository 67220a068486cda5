package engine

import (
	"errors"
	"fmt"

	"gungi/experiments/metrics"
	"gungi/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrNoPieces = errors.New("no pieces given")

type Option func(e *Engine)

// Engine answers rules queries about a board. It keeps no state between calls,
// so one Engine may serve any number of boards and goroutines.
type Engine struct {
	logger  zerolog.Logger
	metrics metrics.Collector
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(e *Engine) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

func New(options ...Option) *Engine {
	e := &Engine{ // Default values
		logger:  log.Logger,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// LegalDestinations returns the tiles the piece may move to, sorted by rank then
// file. With excludeCheckViolations set, moves that leave the owner's commander
// capturable are removed and a buried piece has no destinations.
func (e *Engine) LegalDestinations(b *game.Board, id game.PieceID, excludeCheckViolations bool) ([]game.Coordinate, error) {
	e.metrics.AddQuery()
	p, err := boardPiece(b, id)
	if err != nil {
		return nil, err
	}
	if excludeCheckViolations && !p.TopOfTower {
		return []game.Coordinate{}, nil
	}

	v := newView(b)
	destinations, err := e.destinations(v, p, true)
	if err != nil {
		return nil, err
	}
	if excludeCheckViolations {
		destinations, err = e.excludeCheckViolations(v, p, destinations)
		if err != nil {
			return nil, err
		}
	}
	destinations = normalize(destinations)

	e.logger.Trace().
		Stringer("piece", p).
		Bool("checked", excludeCheckViolations).
		Int("destinations", len(destinations)).
		Msg("legal destinations")
	return destinations, nil
}

// LegalDestinationsForMany returns the union of every piece's legal destinations.
func (e *Engine) LegalDestinationsForMany(b *game.Board, ids []game.PieceID, excludeCheckViolations bool) ([]game.Coordinate, error) {
	if len(ids) == 0 {
		return nil, ErrNoPieces
	}
	var union []game.Coordinate
	for _, id := range ids {
		destinations, err := e.LegalDestinations(b, id, excludeCheckViolations)
		if err != nil {
			return nil, err
		}
		union = append(union, destinations...)
	}
	return normalize(union), nil
}

// CommanderThreatCount counts the ways c's commander can be captured next turn.
func (e *Engine) CommanderThreatCount(b *game.Board, c game.Color) (int, error) {
	return e.threatCount(newView(b), c)
}

func (e *Engine) IsInCheck(b *game.Board, c game.Color) (bool, error) {
	count, err := e.CommanderThreatCount(b, c)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ForcedRearrangementCanResolve reports whether c can drop a piece of dropType
// somewhere in its territory so that none of threats reaches its commander.
func (e *Engine) ForcedRearrangementCanResolve(b *game.Board, c game.Color, dropType game.PieceType, threats []game.PieceID) (bool, error) {
	if !dropType.Valid() {
		return false, fmt.Errorf("rearrangement drop %d: %w", dropType, game.ErrUnknownPieceType)
	}
	for _, id := range threats {
		if _, ok := b.Piece(id); !ok {
			return false, fmt.Errorf("threat %d: %w", id, game.ErrUnknownPiece)
		}
	}
	v := newView(b)
	commander, err := b.Commander(c)
	if err != nil {
		return false, err
	}
	actual, err := e.actualThreats(v, commander, threats)
	if err != nil {
		return false, err
	}
	if len(actual) == 0 {
		return true, nil
	}
	return e.rearrangementResolves(v, commander, []game.PieceType{dropType}, actual)
}

func boardPiece(b *game.Board, id game.PieceID) (game.Piece, error) {
	p, ok := b.Piece(id)
	if !ok {
		return game.Piece{}, fmt.Errorf("piece %d: %w", id, game.ErrUnknownPiece)
	}
	if p.InHand() {
		return game.Piece{}, fmt.Errorf("%s: %w", p, game.ErrNotOnBoard)
	}
	return p, nil
}

// normalize sorts coordinates by rank then file and drops duplicates.
func normalize(coordinates []game.Coordinate) []game.Coordinate {
	out := make([]game.Coordinate, len(coordinates))
	copy(out, coordinates)
	slices.SortFunc(out, func(a, b game.Coordinate) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return slices.Compact(out)
}
