package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/loftylabs/marketplace/domain/auth"
)

type userContextKey struct{}

// Claims is the JWT payload issued to marketplace callers.
type Claims struct {
	jwt.RegisteredClaims
	TenantID       string   `json:"tid"`
	OverrideTenant string   `json:"override_tenant,omitempty"`
	Kind           string   `json:"kind"`
	Roles          []string `json:"roles,omitempty"`
	Permissions    []string `json:"permissions,omitempty"`
}

// AuthConfig holds token verification settings.
type AuthConfig struct {
	secret []byte
}

// NewAuthConfig creates an AuthConfig with the given HMAC secret.
func NewAuthConfig(secret string) AuthConfig {
	return AuthConfig{secret: []byte(secret)}
}

// Authenticate resolves the caller's identity from a Bearer token and
// stores it on the request context. Requests without a token proceed
// anonymously; requests with a bad token are refused.
func Authenticate(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			user, err := parseToken(token, config.secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func parseToken(token string, secret []byte) (auth.User, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, NewAuthenticationError("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return auth.User{}, NewAuthenticationError(err.Error())
	}
	if !parsed.Valid {
		return auth.User{}, NewAuthenticationError("token invalid")
	}

	user := auth.NewUser(claims.Subject, claims.TenantID, auth.Kind(claims.Kind),
		claims.Roles, claims.Permissions)
	if claims.OverrideTenant != "" {
		user = user.WithOverrideTenant(claims.OverrideTenant)
	}
	return user, nil
}

// WithUser returns a context carrying the caller's identity.
func WithUser(ctx context.Context, user auth.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the caller's identity. The zero User means the
// request is anonymous.
func UserFromContext(ctx context.Context) auth.User {
	user, _ := ctx.Value(userContextKey{}).(auth.User)
	return user
}

// RequireAdmin refuses requests whose caller does not hold an
// administrative role. It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user.IsZero() {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin() {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
