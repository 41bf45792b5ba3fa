package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"deal_radar/internal/domain"
	"deal_radar/pkg/errcodes"
)

type Config struct {
	App     App
	Bot     Bot
	Stores  Stores
	Scanner Scanner
	Server  Server
	Log     Log
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"deal-radar"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	// HTTP enables request and response dumps of store and Telegram calls at debug level.
	HTTP bool `env:"LOG_HTTP"`
}

// Load reads .env (if present) and the environment, then validates the result once.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, domain.WrapError(err, errcodes.InvalidConfiguration, "env.Parse")
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c *Config) normalize() {
	c.Bot.Notifier = strings.ToLower(strings.TrimSpace(c.Bot.Notifier))
	c.Stores.Names = lo.FilterMap(c.Stores.Names, func(name string, _ int) (string, bool) {
		name = strings.ToLower(strings.TrimSpace(name))
		return name, name != ""
	})
	c.Stores.HTMLRenderer = strings.ToLower(strings.TrimSpace(c.Stores.HTMLRenderer))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := lo.Map(validationErrs, func(fe validator.FieldError, _ int) string {
				return fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag())
			})

			return domain.WrapError(err, errcodes.InvalidConfiguration, "invalid configuration: "+strings.Join(fields, ", "))
		}

		return domain.WrapError(err, errcodes.InvalidConfiguration, "validate configuration")
	}

	return nil
}
