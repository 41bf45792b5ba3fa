package reconcile_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deal_radar/internal/domain"
	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/deal"
	"deal_radar/internal/domain/service/reconcile"
	"deal_radar/internal/infrastructure/gamelist"
	"deal_radar/pkg/errcodes"
)

type fakeAdapter struct {
	store entity.Store
	fetch func(ctx context.Context, game string) (entity.RawOffer, error)
	calls atomic.Int32
}

func (f *fakeAdapter) Store() entity.Store {
	return f.store
}

func (f *fakeAdapter) Fetch(ctx context.Context, game string) (entity.RawOffer, error) {
	f.calls.Add(1)
	return f.fetch(ctx, game)
}

func offerAdapter(store entity.Store, initial, final string) *fakeAdapter {
	return &fakeAdapter{
		store: store,
		fetch: func(_ context.Context, game string) (entity.RawOffer, error) {
			return entity.RawOffer{
				Title:   game,
				Initial: entity.DecimalPrice(initial),
				Final:   entity.DecimalPrice(final),
			}, nil
		},
	}
}

type failingSource struct {
	err error
}

func (f failingSource) Games(context.Context) ([]string, error) {
	return nil, f.err
}

func kinds(messages []entity.Message) []entity.MessageKind {
	result := make([]entity.MessageKind, 0, len(messages))
	for _, m := range messages {
		result = append(result, m.Kind)
	}

	return result
}

func TestDriverIsolatesFailures(t *testing.T) {
	rq := require.New(t)

	broken := &fakeAdapter{
		store: entity.StoreSteam,
		fetch: func(context.Context, string) (entity.RawOffer, error) {
			return entity.RawOffer{}, domain.NewError(errcodes.StoreUnavailable, "unexpected status 503")
		},
	}
	panicking := &fakeAdapter{
		store: entity.StoreNuuvem,
		fetch: func(context.Context, string) (entity.RawOffer, error) {
			panic("nil map")
		},
	}
	healthy := offerAdapter(entity.StoreGMG, "50.00", "25.00")

	driver := reconcile.NewDriver(deal.NewEvaluator("R$"), broken, panicking, healthy)

	messages := driver.Run(context.Background(), gamelist.Static{"Hades", "Celeste"})
	rq.Len(messages, 6)

	rq.Equal([]entity.MessageKind{
		entity.MessageLookupFailed, entity.MessageLookupFailed, entity.MessagePromotion,
		entity.MessageLookupFailed, entity.MessageLookupFailed, entity.MessagePromotion,
	}, kinds(messages))

	rq.Contains(messages[0].Text, "unexpected status 503")
	rq.Contains(messages[1].Text, "lookup panicked: nil map")
	rq.Contains(messages[2].Text, "50%")
	rq.Equal(int32(2), healthy.calls.Load())
}

func TestDriverOrder(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		t.Run(map[bool]string{false: "Sequential", true: "Parallel"}[parallel], func(t *testing.T) {
			rq := require.New(t)

			slow := &fakeAdapter{
				store: entity.StoreSteam,
				fetch: func(_ context.Context, game string) (entity.RawOffer, error) {
					time.Sleep(30 * time.Millisecond)
					return entity.RawOffer{Title: game, Current: entity.DecimalPrice("10")}, nil
				},
			}
			fast := offerAdapter(entity.StoreGMG, "10", "10")

			driver := reconcile.NewDriver(deal.NewEvaluator("R$"), slow, fast).
				WithParallelStores(parallel)

			messages := driver.Run(context.Background(), gamelist.Static{"Hades", "Celeste", "Hades"})
			rq.Len(messages, 6)

			type pair struct {
				game  string
				store entity.Store
			}

			got := make([]pair, 0, len(messages))
			for _, m := range messages {
				got = append(got, pair{game: m.Game, store: m.Store})
			}

			rq.Equal([]pair{
				{"Hades", entity.StoreSteam}, {"Hades", entity.StoreGMG},
				{"Celeste", entity.StoreSteam}, {"Celeste", entity.StoreGMG},
				{"Hades", entity.StoreSteam}, {"Hades", entity.StoreGMG},
			}, got)

			for _, m := range messages {
				rq.Equal(entity.MessageNoPromotion, m.Kind)
			}
		})
	}
}

func TestDriverGameListProblems(t *testing.T) {
	testCases := []struct {
		name   string
		source reconcile.GameSource
		text   string
	}{
		{
			name:   "Empty list",
			source: gamelist.Static{},
			text:   "no games are listed",
		},
		{
			name:   "Missing file",
			source: gamelist.NewFile("/nonexistent/games.txt"),
			text:   "the games file was not found",
		},
		{
			name:   "Unreadable",
			source: failingSource{err: errors.New("permission denied")},
			text:   "permission denied",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			adapter := offerAdapter(entity.StoreSteam, "10", "5")
			driver := reconcile.NewDriver(deal.NewEvaluator("R$"), adapter)

			messages := driver.Run(context.Background(), tc.source)
			rq.Len(messages, 1)
			rq.Equal(entity.MessageDiagnostic, messages[0].Kind)
			rq.Contains(messages[0].Text, tc.text)
			rq.Zero(adapter.calls.Load())
		})
	}
}

func TestDriverTimeout(t *testing.T) {
	testCases := []struct {
		name  string
		fetch func(ctx context.Context, game string) (entity.RawOffer, error)
	}{
		{
			name: "Adapter honours context",
			fetch: func(ctx context.Context, _ string) (entity.RawOffer, error) {
				<-ctx.Done()
				return entity.RawOffer{}, ctx.Err()
			},
		},
		{
			name: "Adapter ignores context",
			fetch: func(context.Context, string) (entity.RawOffer, error) {
				time.Sleep(time.Second)
				return entity.RawOffer{Current: entity.DecimalPrice("1")}, nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			hanging := &fakeAdapter{store: entity.StoreNuuvem, fetch: tc.fetch}
			healthy := offerAdapter(entity.StoreGMG, "20", "15")

			driver := reconcile.NewDriver(deal.NewEvaluator("R$"), hanging, healthy).
				WithTimeout(50 * time.Millisecond)

			start := time.Now()
			messages := driver.Run(context.Background(), gamelist.Static{"Hades"})

			rq.Less(time.Since(start), 500*time.Millisecond)
			rq.Len(messages, 2)
			rq.Equal(entity.MessageLookupFailed, messages[0].Kind)
			rq.Contains(messages[0].Text, "no answer within 50ms")
			rq.Equal(entity.MessagePromotion, messages[1].Kind)
			rq.Contains(messages[1].Text, "25%")
		})
	}
}

func TestDriverNotFound(t *testing.T) {
	rq := require.New(t)

	adapter := &fakeAdapter{
		store: entity.StoreSteam,
		fetch: func(context.Context, string) (entity.RawOffer, error) {
			return entity.RawOffer{}, domain.NewError(errcodes.GameNotFound, "no results")
		},
	}

	messages := reconcile.NewDriver(deal.NewEvaluator("R$"), adapter).
		Run(context.Background(), gamelist.Static{"Unknown Game"})

	rq.Len(messages, 1)
	rq.Equal(entity.MessageNotFound, messages[0].Kind)
	rq.Contains(messages[0].Text, "Unknown Game")
	rq.Contains(messages[0].Text, "Steam")
}
