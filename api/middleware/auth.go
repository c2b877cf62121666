package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/zuriwear/zuri-backend/api/responses"
	pkgAuth "github.com/zuriwear/zuri-backend/pkg/auth"
	"github.com/zuriwear/zuri-backend/pkg/auth/session"
	"github.com/zuriwear/zuri-backend/pkg/config"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
	"github.com/zuriwear/zuri-backend/pkg/timeout"
)

// Auth validates a bearer token and seeds the request context with the claims.
// The Redis session lookup is bounded so a hung node cannot stall every
// authenticated request.
func Auth(cfg config.JWTConfig, sessionCheckTimeout time.Duration, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				result := timeout.Do(r.Context(), sessionCheckTimeout, func(ctx context.Context) (bool, error) {
					return verifier.HasSession(ctx, claims.ID)
				})
				if result.TimedOut {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeTimeout, result.Err, "session check timed out"))
					return
				}
				if result.Err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Err, "validate session"))
					return
				}
				if !result.Value {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth seeds the context from a bearer token when one is present and
// valid, and passes the request through anonymously otherwise. Guest flows
// such as order lookup by number use it.
func OptionalAuth(cfg config.JWTConfig, sessionCheckTimeout time.Duration, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	authed := Auth(cfg, sessionCheckTimeout, verifier, logg)
	return func(next http.Handler) http.Handler {
		withAuth := authed(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bearerToken(r) == "" {
				next.ServeHTTP(w, r)
				return
			}
			withAuth.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
