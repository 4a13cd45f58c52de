package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"donorcheck/pkg/requestcontext"
)

// identityHeaders are checked in order; the first non-empty value wins.
// These are the headers the usual fronting proxies set for the
// authenticated user.
var identityHeaders = []string{
	"X-Forwarded-Email",
	"X-Forwarded-User",
	"X-User-Email",
	"Remote-User",
}

type identityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Identity resolves the caller's email and display name and stores them on
// the context. Resolution order: a bearer token when a signing key is
// configured, then the forwarded headers. Requests without identity pass
// through; downstream validation decides whether an email is required.
func Identity(signingKey []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if len(signingKey) > 0 {
				if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
					claims := &identityClaims{}
					parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
						return signingKey, nil
					}, jwt.WithValidMethods([]string{"HS256"}))
					if err != nil || !parsed.Valid {
						logger.WarnContext(ctx, "bearer token rejected",
							"error", err,
							"request_id", GetRequestID(ctx),
						)
					} else {
						if claims.Email != "" {
							ctx = requestcontext.WithUserEmail(ctx, claims.Email)
						}
						if claims.Name != "" {
							ctx = requestcontext.WithUserName(ctx, claims.Name)
						}
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			for _, header := range identityHeaders {
				if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
					ctx = requestcontext.WithUserEmail(ctx, v)
					break
				}
			}
			if name := strings.TrimSpace(r.Header.Get("X-Forwarded-Preferred-Username")); name != "" {
				ctx = requestcontext.WithUserName(ctx, name)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
