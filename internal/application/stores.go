package application

import (
	"fmt"
	"net/http"
	"time"

	"deal_radar/internal/config"
	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/reconcile"
	"deal_radar/internal/infrastructure/store"
	"deal_radar/internal/infrastructure/store/gmg"
	"deal_radar/internal/infrastructure/store/htmlpage"
	"deal_radar/internal/infrastructure/store/nuuvem"
	"deal_radar/internal/infrastructure/store/steam"
	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/lox"
)

const chromeSettle = 2 * time.Second

// buildAdapters creates one instrumented adapter per configured store, in
// configured order. Every store gets its own client so rate limits are per store.
func buildAdapters(cfg config.Stores, transport http.RoundTripper) ([]reconcile.Adapter, error) {
	newClient := func() *store.Client {
		return store.NewClient(store.ClientOptions{
			Transport:    transport,
			Timeout:      cfg.Timeout,
			RateInterval: cfg.RateInterval,
		})
	}

	adapters, err := lox.MapErr(cfg.Names, func(name string) (reconcile.Adapter, error) {
		var adapter store.Adapter

		switch entity.Store(name) {
		case entity.StoreSteam:
			adapter = steam.New(newClient(), steam.Options{
				Country:        cfg.Country,
				Language:       cfg.Language,
				SearchCacheTTL: cfg.SearchCacheTTL,
			})
		case entity.StoreNuuvem:
			adapter = nuuvem.New(newClient(), nuuvem.Options{Locale: cfg.NuuvemLocale})
		case entity.StoreGMG:
			adapter = gmg.New(newClient(), gmg.Options{Country: cfg.Country})
		case entity.StoreNuuvemWeb:
			adapter = htmlpage.New(htmlpage.NuuvemSearch, renderer(cfg.HTMLRenderer, newClient()))
		default:
			return nil, domain.NewError(errcodes.InvalidConfiguration, fmt.Sprintf("unknown store %q", name))
		}

		return store.Instrument(adapter), nil
	})
	if err != nil {
		return nil, fmt.Errorf("lox.MapErr: %w", err)
	}

	return adapters, nil
}

func renderer(kind string, client *store.Client) htmlpage.Renderer {
	if kind == config.RendererChrome {
		return htmlpage.ChromeRenderer{
			UserAgent: client.UserAgent(),
			Settle:    chromeSettle,
		}
	}

	return htmlpage.NewStaticRenderer(client)
}
