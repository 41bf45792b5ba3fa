package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"

	"deal_radar/pkg/contextx"
	"deal_radar/pkg/logx"
	"deal_radar/pkg/middlewarex"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const httpServerReadHeaderTimeout = 5 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Server answers liveness on /healthz at once and readiness on /ready only
// after MarkReady, which the scanner calls when its first pass finishes.
type Server struct {
	listenAddress string
	state         []byte
	ready         *atomic.Bool
	lastPass      *atomic.Int64
	middlewares   []middlewarex.Middleware
}

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type readyState struct {
	Options
	LastPass string `json:"last_pass,omitempty"`
}

func NewServer(
	listenAddress string,
	options Options,
) Server {
	stateJSON, _ := json.Marshal(options) //nolint:errcheck,errchkjson

	return Server{
		listenAddress: listenAddress,
		state:         stateJSON,
		ready:         &atomic.Bool{},
		lastPass:      &atomic.Int64{},
	}
}

// MarkReady records a finished pass.
func (s Server) MarkReady(at time.Time) {
	s.lastPass.Store(at.Unix())
	s.ready.Store(true)
}

func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return middlewarex.Chain(mux, s.middlewares...)
}

func (s Server) WithMiddleware(middlewares ...middlewarex.Middleware) Server {
	s.middlewares = append(s.middlewares, middlewares...)
	return s
}

func (s Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           s.Handler(),
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

	logger(ctx).Info("probe server started", slog.String("address", s.listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("probe server stopped")

	return nil
}

func (s Server) handlerHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write(s.state) //nolint:errcheck
}

func (s Server) handlerReady(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write(s.state) //nolint:errcheck

		return
	}

	var opts Options
	_ = json.Unmarshal(s.state, &opts) //nolint:errcheck

	body, _ := json.Marshal(readyState{ //nolint:errcheck,errchkjson
		Options:  opts,
		LastPass: time.Unix(s.lastPass.Load(), 0).UTC().Format(time.RFC3339),
	})

	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}
