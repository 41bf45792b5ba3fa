package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"deal_radar/pkg/contextx"
	"deal_radar/pkg/logx"
	"deal_radar/pkg/middlewarex"
)

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var buildInfo = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "deal_radar",
		Name:      "build_info",
		Help:      "Always 1; labels carry the application name and version.",
	},
	[]string{"name", "version"},
)

type PrometheusServer struct {
	listenAddress string
	gatherer      prometheus.Gatherer
	middlewares   []middlewarex.Middleware
}

func NewPrometheusServer(
	listenAddress string,
) PrometheusServer {
	return PrometheusServer{
		listenAddress: listenAddress,
		gatherer:      prometheus.DefaultGatherer,
	}
}

// SetBuildInfo publishes the running application name and version.
func SetBuildInfo(name, version string) {
	buildInfo.WithLabelValues(name, version).Set(1)
}

func (p PrometheusServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{}))

	return middlewarex.Chain(mux, p.middlewares...)
}

func (p PrometheusServer) WithMiddleware(middlewares ...middlewarex.Middleware) PrometheusServer {
	p.middlewares = append(p.middlewares, middlewares...)
	return p
}

func (p PrometheusServer) Run(ctx context.Context) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              p.listenAddress,
		Handler:           p.Handler(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info("prometheus server started", slog.String("address", p.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("prometheus server stopped")

	return nil
}
