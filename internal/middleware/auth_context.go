package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-spa-booking/internal/domain/access"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/ports/auth"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Headers del modo dev.
const (
	HeaderDebugUserID  = "X-Debug-User-ID"
	HeaderDebugRole    = "X-Debug-Role"
	HeaderDebugOwnedID = "X-Debug-Owned-ID"
)

// AuthContext:
//   - Si verifier != nil y viene Bearer token => Verify() y resuelve el Principal.
//   - Si verifier == nil => modo dev: X-Debug-User-ID (+ X-Debug-Role, X-Debug-Owned-ID).
//     Sin rol se asume client dueño de X-Debug-User-ID.
//   - Si no hay principal el request sigue; el servicio responde 401 al autorizar.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFrom(r, verifier, log)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			p, err := access.ResolvePrincipal(claims)
			if err != nil {
				log.Debug("principal not resolved", map[string]any{"subject": claims.Subject, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func claimsFrom(r *http.Request, verifier auth.AuthVerifier, log logger.Logger) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID))
		if uid == "" {
			return auth.Claims{}, false
		}
		role := strings.TrimSpace(r.Header.Get(HeaderDebugRole))
		if role == "" {
			role = string(access.RoleClient)
		}
		owned := strings.TrimSpace(r.Header.Get(HeaderDebugOwnedID))
		if owned == "" {
			owned = uid
		}
		return auth.Claims{Subject: uid, Role: role, OwnedResourceID: owned}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}

	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		// No cortamos aquí; el servicio decide 401.
		log.Debug("token rejected", map[string]any{"error": err.Error()})
		return auth.Claims{}, false
	}
	return claims, true
}

func WithPrincipal(ctx context.Context, p access.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal devuelve el principal del request. Sin autenticación devuelve
// el Principal vacío, que la política siempre deniega.
func GetPrincipal(ctx context.Context) (access.Principal, bool) {
	p, ok := ctx.Value(principalKey).(access.Principal)
	return p, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
