package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"deal_radar/pkg/metrics"
	"deal_radar/pkg/middlewarex"
)

type MetricServer struct {
	Name          string
	Version       string
	ListenAddress string
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	metrics.SetBuildInfo(m.Name, m.Version)

	prometheusServer := metrics.NewPrometheusServer(
		m.ListenAddress,
	).WithMiddleware(middlewarex.Operational()...)

	g.Go(func() error {
		if err := prometheusServer.Run(ctx); err != nil {
			return fmt.Errorf("prometheusServer.Run: %w", err)
		}

		return nil
	})
}
