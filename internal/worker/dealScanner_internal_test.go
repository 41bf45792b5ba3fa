package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"deal_radar/internal/domain/entity"
	"deal_radar/internal/domain/service/reconcile"
	"deal_radar/internal/infrastructure/gamelist"
)

type staticDriver []entity.Message

func (s staticDriver) Run(context.Context, reconcile.GameSource) []entity.Message {
	return s
}

type notifierFunc func(ctx context.Context, msg entity.Message) error

func (f notifierFunc) Send(ctx context.Context, msg entity.Message) error {
	return f(ctx, msg)
}

func TestDealScannerMetrics(t *testing.T) {
	rq := require.New(t)

	sent := messagesTotal.WithLabelValues("diagnostic", "sent")
	failed := messagesTotal.WithLabelValues("diagnostic", "failed")
	sentBefore := testutil.ToFloat64(sent)
	failedBefore := testutil.ToFloat64(failed)
	passesBefore := testutil.ToFloat64(passesTotal)

	calls := 0
	notifier := notifierFunc(func(context.Context, entity.Message) error {
		calls++
		if calls == 1 {
			return errors.New("boom")
		}
		return nil
	})

	driver := staticDriver{
		{Kind: entity.MessageDiagnostic, Text: "a"},
		{Kind: entity.MessageDiagnostic, Text: "b"},
	}

	NewDealScanner(driver, gamelist.Static{"Hades"}, notifier).RunOnce(context.Background())

	rq.InDelta(sentBefore+1, testutil.ToFloat64(sent), 0.001)
	rq.InDelta(failedBefore+1, testutil.ToFloat64(failed), 0.001)
	rq.InDelta(passesBefore+1, testutil.ToFloat64(passesTotal), 0.001)
}
