// Package auth resolves the caller's user id from a bearer token.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmehra2102/grocery-order-service/pkg/api/response"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier checks a raw bearer token and returns the user id it was issued to.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type ctxKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// Middleware rejects requests that carry no verifiable token.
func Middleware(log *slog.Logger, v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				response.Unauthorized(w, "missing bearer token")
				return
			}
			uid, err := v.VerifyToken(r.Context(), token)
			if err != nil || uid == "" {
				log.Warn("token verification failed", "err", err, "path", r.URL.Path)
				response.Unauthorized(w, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

// Static maps fixed tokens to user ids. Used for local runs without an
// identity provider.
type Static map[string]string

func (s Static) VerifyToken(_ context.Context, token string) (string, error) {
	uid, ok := s[token]
	if !ok {
		return "", ErrUnauthenticated
	}
	return uid, nil
}
