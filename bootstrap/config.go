package bootstrap

import (
	"strings"

	"gungi/meta"

	"github.com/spf13/viper"
)

const EnvPrefix = "GUNGI"

type Config struct {
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LogPretty  bool   `mapstructure:"LOG_PRETTY"`
	MaxTurns   int    `mapstructure:"MAX_TURNS"`
	Games      int    `mapstructure:"GAMES"`
	Seed       uint64 `mapstructure:"SEED"`
	PerftDepth int    `mapstructure:"PERFT_DEPTH"`
	PerftDrops bool   `mapstructure:"PERFT_DROPS"`
	ResultsDir string `mapstructure:"RESULTS_DIR"`
	Metrics    bool   `mapstructure:"METRICS"`
}

// Setup reads the config file at cfgPath, if any, over the defaults. Every key
// can be overridden from the environment as GUNGI_<KEY>.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("MAX_TURNS", meta.MAX_TURNS)
	v.SetDefault("GAMES", meta.GAMES)
	v.SetDefault("SEED", meta.SEED)
	v.SetDefault("PERFT_DEPTH", meta.PERFT_DEPTH)
	v.SetDefault("PERFT_DROPS", false)
	v.SetDefault("RESULTS_DIR", "experiments/results")
	v.SetDefault("METRICS", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		err := v.ReadInConfig()
		if err != nil {
			return nil, err
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
