package config

import "time"

const (
	RendererStatic = "static"
	RendererChrome = "chrome"
)

type Stores struct {
	// Names is the fixed order in which every game is checked.
	Names        []string      `env:"STORES" envDefault:"steam,nuuvem,gmg" envSeparator:"," validate:"min=1,unique,dive,oneof=steam nuuvem gmg nuuvem-web"`
	Timeout      time.Duration `env:"STORE_TIMEOUT" envDefault:"12s" validate:"gt=0"`
	RateInterval time.Duration `env:"STORE_RATE_INTERVAL" envDefault:"500ms" validate:"gte=0"`
	Country      string        `env:"STORE_COUNTRY" envDefault:"br" validate:"len=2"`
	Language     string        `env:"STORE_LANGUAGE" envDefault:"portuguese" validate:"required"`
	NuuvemLocale string        `env:"NUUVEM_LOCALE" envDefault:"br-pt" validate:"required"`
	HTMLRenderer string        `env:"HTML_RENDERER" envDefault:"static" validate:"oneof=static chrome"`
	// SearchCacheTTL keeps Steam search results between passes; zero disables the cache.
	SearchCacheTTL time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"6h" validate:"gte=0"`
}
