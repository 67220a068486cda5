package main

import (
	"flag"
	"os"

	"gungi/bootstrap"
	"gungi/engine"
	"gungi/experiments"
	"gungi/experiments/metrics"
	"gungi/game"

	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a config file (yaml, json or toml)")
	mode := flag.String("mode", "selfplay", "Experiment to run: perft or selfplay")
	depth := flag.Int("depth", 0, "Perft depth, overrides the config")
	games := flag.Int("games", 0, "Self-play games, overrides the config")
	flag.Parse()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		bootstrap.SetupLogger("info", true)
		log.Fatal().Err(err).Msg("failed to load config")
	}
	bootstrap.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	if *depth > 0 {
		cfg.PerftDepth = *depth
	}
	if *games > 0 {
		cfg.Games = *games
	}

	switch *mode {
	case "perft":
		runPerft(cfg)
	case "selfplay":
		runSelfPlay(cfg)
	default:
		log.Error().Str("mode", *mode).Msg("unknown mode")
		flag.Usage()
		os.Exit(2)
	}
}

func runPerft(cfg *bootstrap.Config) {
	collector := metrics.NewDummyCollector()
	if cfg.Metrics {
		collector = metrics.NewCollector()
	}
	e := engine.New(engine.WithMetrics(collector))
	result, err := experiments.Perft(e, game.StandardBoard(), game.Black, experiments.PerftConfig{
		Depth:      cfg.PerftDepth,
		Drops:      cfg.PerftDrops,
		Position:   "standard",
		ResultsDir: cfg.ResultsDir,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("perft failed")
	}
	log.Info().
		Int("nodes", result.Nodes).
		Int("captures", result.Captures).
		Int("checks", result.Checks).
		Int("checkmates", result.Checkmate).
		Interface("engine", collector.Complete()).
		Msg("perft")
}

func runSelfPlay(cfg *bootstrap.Config) {
	records, err := experiments.SelfPlay(experiments.SelfPlayConfig{
		Games:      cfg.Games,
		Seed:       cfg.Seed,
		MaxTurns:   cfg.MaxTurns,
		ResultsDir: cfg.ResultsDir,
		Metrics:    cfg.Metrics,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}
	wins := make(map[string]int)
	for _, r := range records {
		wins[r.Winner]++
	}
	log.Info().Interface("results", wins).Msg("self-play")
}
