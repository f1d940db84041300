package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	LeaderboardLimit int   `env:"LEADERBOARD_LIMIT" envDefault:"10"`
	WagerSeed        int64 `env:"WAGER_SEED" envDefault:"0"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
