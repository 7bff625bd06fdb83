package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/store-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, state := ensureState(r.Context())

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"method": r.Method,
					"path":   r.URL.Path,
				})
			}

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			if logg != nil {
				logg.Info(ctx, "request.start")
			}

			next.ServeHTTP(rec, r.WithContext(ctx))

			if logg != nil {
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					ctx = logg.WithRoute(ctx, r.Method, rctx.RoutePattern())
				}
				ctx = logg.WithFields(ctx, map[string]any{
					"status":      rec.Status(),
					"duration_ms": time.Since(start).Milliseconds(),
				})
				if state.subject != "" {
					ctx = logg.WithSubject(ctx, state.subject)
				}
				logg.Info(ctx, "request.complete")
			}
		})
	}
}
