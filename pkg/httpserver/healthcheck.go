package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/beast/pkg/logger"
)

// Probe checks a dependency, see pg.Healthcheck and redis.Healthcheck.
type Probe func(context.Context) error

// HealthCheckHandler answers "ALIVE" without probes and "READY" when every
// probe passes; a failing probe yields 503 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, probes ...Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(probes) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
