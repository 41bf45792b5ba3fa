package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/deal"
	"deal_radar/pkg/contextx"
	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/logx"
)

const DefaultTimeout = 12 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Adapter interface {
	Store() entity.Store
	Fetch(ctx context.Context, game string) (entity.RawOffer, error)
}

type GameSource interface {
	Games(ctx context.Context) ([]string, error)
}

type Evaluator interface {
	Evaluate(d entity.Deal) entity.Message
	Diagnostic(err error) entity.Message
}

// Driver checks every game against every adapter and turns each pair into
// exactly one message. A failing pair never affects the others.
type Driver struct {
	adapters  []Adapter
	evaluator Evaluator
	timeout   time.Duration
	parallel  bool
}

func NewDriver(evaluator Evaluator, adapters ...Adapter) *Driver {
	return &Driver{
		adapters:  adapters,
		evaluator: evaluator,
		timeout:   DefaultTimeout,
	}
}

// WithTimeout bounds each adapter call. Zero keeps the default.
func (d *Driver) WithTimeout(timeout time.Duration) *Driver {
	if timeout > 0 {
		d.timeout = timeout
	}

	return d
}

// WithParallelStores queries the adapters of one game concurrently.
func (d *Driver) WithParallelStores(parallel bool) *Driver {
	d.parallel = parallel
	return d
}

// Run performs one pass. Messages are ordered by game, then by adapter.
// A game list that cannot be read yields a single diagnostic message.
func (d *Driver) Run(ctx context.Context, source GameSource) []entity.Message {
	games, err := source.Games(ctx)
	if err != nil {
		logger(ctx).Error("game list unavailable", logx.Error(err))
		return []entity.Message{d.evaluator.Diagnostic(err)}
	}

	messages := make([]entity.Message, 0, len(games)*len(d.adapters))

	for _, game := range games {
		if ctx.Err() != nil {
			logger(ctx).Warn("pass interrupted", slog.String(logx.FieldGame, game), logx.Error(ctx.Err()))
			break
		}

		for _, dl := range d.checkGame(ctx, game) {
			messages = append(messages, d.evaluator.Evaluate(dl))
		}
	}

	return messages
}

// checkGame returns one deal per adapter, in adapter order.
func (d *Driver) checkGame(ctx context.Context, game string) []entity.Deal {
	deals := make([]entity.Deal, len(d.adapters))

	if !d.parallel {
		for i, adapter := range d.adapters {
			deals[i] = d.lookup(ctx, adapter, game)
		}

		return deals
	}

	var g errgroup.Group

	for i, adapter := range d.adapters {
		g.Go(func() error {
			deals[i] = d.lookup(ctx, adapter, game)
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // lookups never return errors

	return deals
}

type fetchResult struct {
	raw entity.RawOffer
	err error
}

func (d *Driver) lookup(ctx context.Context, adapter Adapter, game string) entity.Deal {
	store := adapter.Store()
	log := logger(ctx).With(slog.String(logx.FieldGame, game), slog.String(logx.FieldStore, store.String()))

	callCtx, cancel := context.WithTimeout(contextx.WithLogger(ctx, log), d.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan fetchResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult{err: domain.NewError(errcodes.LookupPanicked, fmt.Sprintf("lookup panicked: %v", r))}
			}
		}()

		raw, err := adapter.Fetch(callCtx, game)
		done <- fetchResult{raw: raw, err: err}
	}()

	var res fetchResult

	// An adapter that ignores its context is abandoned once the deadline passes.
	select {
	case res = <-done:
	case <-callCtx.Done():
		res = fetchResult{err: callCtx.Err()}
	}

	if res.err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && !domain.HasCode(res.err, errcodes.TimeoutExceeded) {
		res.err = domain.WrapError(res.err, errcodes.TimeoutExceeded, fmt.Sprintf("no answer within %s", d.timeout))
	}

	log = log.With(slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()))

	if res.err != nil {
		switch {
		case domain.IsNotFound(res.err):
			log.Info("game not found")
		case domain.HasCode(res.err, errcodes.LookupPanicked):
			log.Error("store lookup panicked", logx.Error(res.err))
		default:
			log.Warn("store lookup failed", logx.Error(res.err))
		}

		return deal.Failed(game, store, res.err)
	}

	result := deal.Normalize(res.raw, game, store)
	log.Debug("store lookup done", slog.Int("discount", result.DiscountPercent))

	return result
}
