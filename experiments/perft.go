package experiments

import (
	"errors"
	"fmt"
	"time"

	"gungi/engine"
	"gungi/experiments/metrics"
	"gungi/game"

	"github.com/rs/zerolog/log"
)

var ErrBoardMutated = errors.New("engine query changed the board")

type PerftConfig struct {
	Depth      int
	Drops      bool   // Also expand drops from hand
	Position   string // Label for the record
	ResultsDir string // Empty skips writing records
}

type perft struct {
	engine *engine.Engine
	drops  bool
	metric metrics.PerftMetric
}

// Perft counts the action sequences of the given depth from board with player
// to move. Every engine query is bracketed by a board hash comparison.
// Forced rearrangement is not modelled: the turn always passes. Taking the
// commander ends a line; such children are leaves at the last ply only.
func Perft(e *engine.Engine, board *game.Board, player game.Color, cfg PerftConfig) (metrics.PerftMetric, error) {
	p := &perft{
		engine: e,
		drops:  cfg.Drops,
		metric: metrics.PerftMetric{Depth: cfg.Depth},
	}

	log.Info().Msgf("starting perft to depth %d...", cfg.Depth)
	start := time.Now()
	err := p.search(board, player, cfg.Depth)
	if err != nil {
		return p.metric, err
	}
	p.metric.Duration = time.Since(start)
	log.Info().Msgf("completed perft with %d nodes in %s", p.metric.Nodes, p.metric.Duration)

	if cfg.ResultsDir == "" {
		return p.metric, nil
	}
	writer, err := metrics.NewWriter(cfg.ResultsDir, "perft")
	if err != nil {
		return p.metric, err
	}
	err = writer.WritePerftRecords([]metrics.PerftRecord{{Position: cfg.Position, PerftMetric: p.metric}})
	if err != nil {
		return p.metric, err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored perft records")
	return p.metric, nil
}

type child struct {
	board   *game.Board
	capture bool
	drop    bool
	final   bool // The opponent's commander is gone
}

func (p *perft) search(board *game.Board, player game.Color, depth int) error {
	if depth == 0 {
		p.metric.Nodes++
		return nil
	}
	children, err := p.children(board, player)
	if err != nil {
		return err
	}
	for _, c := range children {
		if c.final && depth > 1 {
			continue
		}
		if depth == 1 {
			err = p.tally(c, player.Opponent())
			if err != nil {
				return err
			}
		}
		err = p.search(c.board, player.Opponent(), depth-1)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *perft) tally(c child, next game.Color) error {
	if c.capture {
		p.metric.Captures++
	}
	if c.drop {
		p.metric.Drops++
	}
	if c.final {
		return nil
	}
	inCheck, err := p.engine.IsInCheck(c.board, next)
	if err != nil {
		return err
	}
	if !inCheck {
		return nil
	}
	p.metric.Checks++
	replies, err := p.children(c.board, next)
	if err != nil {
		return err
	}
	if len(replies) == 0 {
		p.metric.Checkmate++
	}
	return nil
}

func (p *perft) children(board *game.Board, player game.Color) ([]child, error) {
	var children []child
	for _, piece := range board.BoardPieces() {
		if piece.Owner != player || !piece.TopOfTower {
			continue
		}
		legal, err := p.query(board, func() ([]game.Coordinate, error) {
			return p.engine.LegalDestinations(board, piece.ID, true)
		})
		if err != nil {
			return nil, err
		}
		for _, to := range legal {
			next, outcome, err := board.Apply(game.Move{PieceID: piece.ID, To: to})
			if err != nil {
				return nil, err
			}
			children = append(children, child{
				board:   next,
				capture: outcome.Capture,
				final:   outcome.TakesCommander(board),
			})
		}
	}
	if !p.drops {
		return children, nil
	}

	turn := game.TurnState{Player: player}
	tried := make(map[game.PieceType]bool)
	for _, piece := range board.HandPieces(player) {
		if tried[piece.Type] {
			continue
		}
		tried[piece.Type] = true
		for _, side := range []game.Side{game.FrontSide, game.BackSide} {
			for rank := 0; rank < game.BoardSize; rank++ {
				for file := 0; file < game.BoardSize; file++ {
					to := game.At(file, rank)
					ok, err := p.engine.IsValidDrop(board, turn, piece.ID, to, side)
					if err != nil {
						return nil, err
					}
					if !ok {
						continue
					}
					next, err := board.ApplyDrop(game.Drop{PieceID: piece.ID, To: to, Side: side})
					if err != nil {
						return nil, err
					}
					inCheck, err := p.engine.IsInCheck(next, player)
					if err != nil {
						return nil, err
					}
					if !inCheck {
						children = append(children, child{board: next, drop: true})
					}
				}
			}
		}
	}
	return children, nil
}

// query runs fn and fails if the board hash moved.
func (p *perft) query(board *game.Board, fn func() ([]game.Coordinate, error)) ([]game.Coordinate, error) {
	before := board.Hash()
	out, err := fn()
	if err != nil {
		return nil, err
	}
	if after := board.Hash(); after != before {
		return nil, fmt.Errorf("hash %x became %x: %w", before, after, ErrBoardMutated)
	}
	return out, nil
}
