package stubserver

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// authContext extrae el Bearer token, lo valida y deja los claims en el
// contexto. No corta acá: cada handler decide si exige auth (requireClaims).
func authContext(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parseToken(secret, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getClaims(ctx context.Context) (Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return Claims{}, false
	}
	c, ok := v.(Claims)
	return c, ok
}

// requireClaims es el corte 401 de los handlers protegidos.
func requireClaims(w http.ResponseWriter, r *http.Request) (Claims, bool) {
	claims, ok := getClaims(r.Context())
	if !ok || claims.UserID == 0 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Claims{}, false
	}
	return claims, true
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
