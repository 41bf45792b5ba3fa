package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"deal_radar/internal/config"
	"deal_radar/internal/domain/service/deal"
	"deal_radar/internal/domain/service/reconcile"
	"deal_radar/internal/infrastructure/gamelist"
	"deal_radar/internal/infrastructure/notifier"
	"deal_radar/internal/worker"
	"deal_radar/pkg/application/modules"
	"deal_radar/pkg/contextx"
	"deal_radar/pkg/httpx"
	"deal_radar/pkg/logx"
)

const httpLogFieldMaxLen = 4096

// Run loads the configuration, wires the scanner and performs one pass, or
// keeps passing on RUN_INTERVAL until ctx is done.
func Run(ctx context.Context, stdout io.Writer) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	log := logx.NewLogger(os.Stderr, cfg.Log.Level).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	slog.SetDefault(log)
	ctx = contextx.WithLogger(ctx, log)

	// 2. Outbound HTTP
	transport := http.DefaultTransport
	if cfg.Log.HTTP {
		transport = httpx.NewLoggingRoundTripper(
			transport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(httpLogFieldMaxLen),
		)
	}

	// 3. Stores
	adapters, err := buildAdapters(cfg.Stores, transport)
	if err != nil {
		return fmt.Errorf("build adapters: %w", err)
	}

	driver := reconcile.NewDriver(deal.NewEvaluator(cfg.Scanner.CurrencySymbol), adapters...).
		WithTimeout(cfg.Stores.Timeout).
		WithParallelStores(cfg.Scanner.ParallelStores)

	// 4. Notifier
	sink, err := newNotifier(cfg.Bot, transport, stdout)
	if err != nil {
		return fmt.Errorf("notifier: %w", err)
	}

	scanner := worker.NewDealScanner(driver, gamelist.NewFile(cfg.Scanner.GamesFile), sink).
		WithInterval(cfg.Scanner.RunInterval)

	log.Info("deal radar configured",
		slog.Any(logx.FieldStores, cfg.Stores.Names),
		slog.String("notifier", cfg.Bot.Notifier),
		slog.String("games-file", cfg.Scanner.GamesFile),
	)

	if cfg.Scanner.RunInterval <= 0 {
		scanner.RunOnce(ctx)
		return nil
	}

	// 5. Loop mode with probe and metrics servers
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Server.ProbeAddr != "" {
		probeServer := modules.ProbeServer{
			Name:          cfg.App.Name,
			Version:       cfg.App.Version,
			ListenAddress: cfg.Server.ProbeAddr,
		}.Run(ctx, g)

		scanner.WithPassHook(func(worker.PassSummary) {
			probeServer.MarkReady(time.Now())
		})
	}

	if cfg.Server.MetricsAddr != "" {
		modules.MetricServer{
			Name:          cfg.App.Name,
			Version:       cfg.App.Version,
			ListenAddress: cfg.Server.MetricsAddr,
		}.Run(ctx, g)
	}

	g.Go(func() error {
		if err := scanner.Run(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("scanner.Run: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	log.Info("application stopping...")

	return nil
}

func newNotifier(cfg config.Bot, transport http.RoundTripper, stdout io.Writer) (worker.Notifier, error) {
	if cfg.Notifier == config.NotifierConsole {
		return notifier.NewConsole(stdout), nil
	}

	bot, err := notifier.NewTelegramBot(cfg.Token, cfg.ChatID, notifier.TelegramOptions{
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		return nil, fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	return bot, nil
}
