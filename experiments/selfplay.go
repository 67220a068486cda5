package experiments

import (
	"fmt"
	"time"

	"gungi/engine"
	"gungi/experiments/metrics"
	"gungi/gamemaster"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type SelfPlayConfig struct {
	Games      int
	Seed       uint64
	MaxTurns   int
	ResultsDir string // Empty skips writing records
	Metrics    bool
}

// SelfPlay runs games between two players choosing uniformly among legal
// actions. Game i is seeded with Seed+i, so a run is reproducible.
func SelfPlay(cfg SelfPlayConfig) ([]metrics.GameRecord, error) {
	log.Info().Msgf("starting self-play experiment with %d games...", cfg.Games)

	records := make([]metrics.GameRecord, 0, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		seed := cfg.Seed + uint64(i)
		log.Info().Msgf("starting game %d of %d (seed %d)...", i+1, cfg.Games, seed)

		record, err := runGame(i+1, seed, cfg)
		if err != nil {
			return records, fmt.Errorf("game %d: %w", i+1, err)
		}
		records = append(records, record)

		log.Info().Msgf("completed game %d with result: %s after %d turns", i+1, record.Reason, record.TotalTurns)
	}
	log.Info().Msg("completed self-play experiment")

	if cfg.ResultsDir == "" {
		return records, nil
	}
	writer, err := metrics.NewWriter(cfg.ResultsDir, "selfplay")
	if err != nil {
		return records, err
	}
	err = writer.WriteGameRecords(records)
	if err != nil {
		return records, err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored game records")
	return records, nil
}

func runGame(n int, seed uint64, cfg SelfPlayConfig) (metrics.GameRecord, error) {
	collector := metrics.NewDummyCollector()
	if cfg.Metrics {
		collector = metrics.NewCollector()
	}
	gm := gamemaster.NewStandard(
		gamemaster.WithEngine(engine.New(engine.WithMetrics(collector))),
		gamemaster.WithMaxTurns(cfg.MaxTurns),
	)
	rng := rand.New(rand.NewSource(seed))

	start := time.Now()
	collector.Start()
	state, getUpdate := gm.Init()
	for !state.GameOver() {
		actions, err := gm.LegalActions()
		if err != nil {
			return metrics.GameRecord{}, err
		}
		if len(actions) == 0 {
			return metrics.GameRecord{}, fmt.Errorf("ply %d: no legal actions in an ongoing game", state.Ply)
		}
		err = gm.Play(actions[rng.Intn(len(actions))])
		if err != nil {
			return metrics.GameRecord{}, err
		}
		if _, next := getUpdate(); next != nil {
			state = *next
		}
	}
	end := time.Now()

	winner := "draw"
	if state.Result.Decisive() {
		winner = state.Winner.String()
	}
	return metrics.GameRecord{
		ID: state.ID.String(),
		GameMetric: metrics.GameMetric{
			Game:         n,
			Seed:         seed,
			Winner:       winner,
			Reason:       state.Result.String(),
			TotalTurns:   state.Ply,
			StartTime:    start,
			EndTime:      end,
			Duration:     end.Sub(start),
			EngineMetric: collector.Complete(),
		},
	}, nil
}
