package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

type ctxKey string

const exportClaimsKey ctxKey = "exportClaims"

// requestLogger attaches a per-request logger to the context.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLogger := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr).
				Logger()

			ctx := reqLogger.WithContext(req.Context())
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// exportTokenMiddleware validates the export token (query "token" or Bearer
// header) and injects its claims into the context.
func (a *App) exportTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("token")
		if raw == "" {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				http.Error(w, "missing export token", http.StatusUnauthorized)
				return
			}
			raw = strings.TrimPrefix(authz, "Bearer ")
		}
		claims, err := parseExportToken(a.cfg.JWTSecret, raw)
		if err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("export token rejected")
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), exportClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// mustExportClaims returns the claims from context or nil if missing.
func mustExportClaims(r *http.Request) *exportClaims {
	val := r.Context().Value(exportClaimsKey)
	if val == nil {
		return nil
	}
	return val.(*exportClaims)
}
