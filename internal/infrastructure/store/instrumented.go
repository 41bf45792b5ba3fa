package store

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
)

const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

//nolint:gochecknoglobals
var (
	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "deal_radar",
			Name:      "store_lookups_total",
			Help:      "Store lookups by outcome.",
		},
		[]string{"store", "outcome"},
	)
	lookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "deal_radar",
			Name:      "store_lookup_duration_seconds",
			Help:      "Store lookup duration seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"store"},
	)
)

type Adapter interface {
	Store() entity.Store
	Fetch(ctx context.Context, game string) (entity.RawOffer, error)
}

// Instrumented records lookup metrics around another adapter.
type Instrumented struct {
	next Adapter
}

func Instrument(next Adapter) Instrumented {
	return Instrumented{next: next}
}

func (i Instrumented) Store() entity.Store {
	return i.next.Store()
}

func (i Instrumented) Fetch(ctx context.Context, game string) (entity.RawOffer, error) {
	start := time.Now()
	store := i.next.Store().String()

	offer, err := i.next.Fetch(ctx, game)

	lookupDuration.WithLabelValues(store).Observe(time.Since(start).Seconds())
	lookupsTotal.WithLabelValues(store, outcome(err)).Inc()

	return offer, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeFound
	case domain.IsNotFound(err):
		return outcomeNotFound
	default:
		return outcomeError
	}
}
