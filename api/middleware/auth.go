package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/store-service/api/responses"
	pkgAuth "github.com/angelmondragon/store-service/pkg/auth"
	"github.com/angelmondragon/store-service/pkg/config"
	pkgerrors "github.com/angelmondragon/store-service/pkg/errors"
	"github.com/angelmondragon/store-service/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with its subject.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			if len(raw) < 7 || !strings.EqualFold(raw[:7], "bearer ") {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must use the Bearer scheme"))
				return
			}
			token := strings.TrimSpace(raw[7:])
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithSubject(r.Context(), claims.Subject)
			if logg != nil {
				ctx = logg.WithSubject(ctx, claims.Subject)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
