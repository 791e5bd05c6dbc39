package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/coder-muller/radio-cultura-go/internal/service"
	"go.uber.org/zap"
)

type contextKey string

const tenantKeyCtx contextKey = "tenantKey"

// SessionMiddleware validates Bearer tokens and injects the tenant key
// ("chave") into the request context. Every data-service call downstream is
// scoped by that key.
func SessionMiddleware(authSvc *service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Token de autenticação não fornecido")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: invalid token format",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Formato de token inválido")
				return
			}

			claims, err := authSvc.ValidateAccessToken(parts[1])
			if err != nil {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), tenantKeyCtx, claims.TenantKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantKeyFromContext extracts the authenticated tenant key from context.
func TenantKeyFromContext(ctx context.Context) string {
	v, _ := ctx.Value(tenantKeyCtx).(string)
	return v
}
