package middlewarex

import (
	"net/http"

	"deal_radar/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Middleware func(next http.Handler) http.Handler

// Chain wraps h so that the first middleware sees the request first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}

// Operational is the chain used by the probe and metrics servers.
func Operational() []Middleware {
	return []Middleware{TraceID, Logger, AccessLog, Recovery}
}
