package config

import "time"

type Scanner struct {
	GamesFile      string `env:"GAMES_FILE" envDefault:"games.txt" validate:"required"`
	ParallelStores bool   `env:"PARALLEL_STORES"`
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"R$" validate:"required"`
	// RunInterval of zero runs a single pass and exits.
	RunInterval time.Duration `env:"RUN_INTERVAL" envDefault:"0s" validate:"gte=0"`
}
