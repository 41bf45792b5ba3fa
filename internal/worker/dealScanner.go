package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/reconcile"
	"deal_radar/pkg/contextx"
	"deal_radar/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var (
	messagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "deal_radar",
			Name:      "messages_total",
			Help:      "Messages produced by kind and delivery outcome.",
		},
		[]string{"kind", "outcome"},
	)
	passesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "deal_radar",
			Name:      "passes_total",
			Help:      "Completed reconciliation passes.",
		},
	)
)

type Driver interface {
	Run(ctx context.Context, source reconcile.GameSource) []entity.Message
}

type Notifier interface {
	Send(ctx context.Context, message entity.Message) error
}

// PassSummary describes one finished pass.
type PassSummary struct {
	TraceID  contextx.TraceID
	Messages int
	Sent     int
	Failed   int
}

type DealScanner struct {
	driver   Driver
	source   reconcile.GameSource
	notifier Notifier

	// interval between the end of one pass and the start of the next; zero runs a single pass.
	interval time.Duration
	onPass   func(PassSummary)

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewDealScanner(driver Driver, source reconcile.GameSource, notifier Notifier) *DealScanner {
	return &DealScanner{
		driver:   driver,
		source:   source,
		notifier: notifier,
	}
}

func (w *DealScanner) WithInterval(interval time.Duration) *DealScanner {
	w.interval = interval
	return w
}

// WithPassHook registers fn to be called after every pass.
func (w *DealScanner) WithPassHook(fn func(PassSummary)) *DealScanner {
	w.onPass = fn
	return w
}

func (w *DealScanner) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("scanner is already running")
	}

	scanCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(scanCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("scanner stopped", logx.Error(err))
		}
	}()

	return nil
}

func (w *DealScanner) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// IsRunning возвращает текущий статус
func (w *DealScanner) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// Run performs passes until ctx is done. Without an interval it performs one
// pass and returns nil.
func (w *DealScanner) Run(ctx context.Context) error {
	logger(ctx).Info("deal scanner started", slog.Duration("interval", w.interval))

	for {
		w.RunOnce(ctx)

		if w.interval <= 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			logger(ctx).Info("deal scanner stopped")
			return ctx.Err()
		case <-time.After(w.interval):
		}
	}
}

// RunOnce performs a single pass and delivers every message in order.
// Delivery failures are logged and counted; they never stop the pass.
func (w *DealScanner) RunOnce(ctx context.Context) PassSummary {
	traceID := contextx.NewTraceID()
	log := logger(ctx).With(slog.String(logx.FieldTraceID, traceID.String()))
	ctx = contextx.WithLogger(contextx.WithTraceID(ctx, traceID), log)

	start := time.Now()
	messages := w.driver.Run(ctx, w.source)

	summary := PassSummary{
		TraceID:  traceID,
		Messages: len(messages),
	}

	for _, msg := range messages {
		kind := msg.Kind.String()

		if err := w.notifier.Send(ctx, msg); err != nil {
			summary.Failed++
			messagesTotal.WithLabelValues(kind, "failed").Inc()
			log.Error("send message failed",
				slog.String(logx.FieldGame, msg.Game),
				slog.String(logx.FieldStore, msg.Store.String()),
				slog.String(logx.FieldMessageKind, kind),
				logx.Error(err),
			)

			continue
		}

		summary.Sent++
		messagesTotal.WithLabelValues(kind, "sent").Inc()
	}

	passesTotal.Inc()

	log.Info("pass completed",
		slog.Int(logx.FieldMessages, summary.Messages),
		slog.Int("sent", summary.Sent),
		slog.Int("failed", summary.Failed),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	)

	if w.onPass != nil {
		w.onPass(summary)
	}

	return summary
}
