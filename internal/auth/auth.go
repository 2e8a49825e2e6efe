// Package auth resolves bearer tokens to user ids and carries the
// authenticated user through request contexts.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/five82/tango/internal/vocab"
)

// Verifier maps a bearer token to the user id it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// User binds a user id to its API token.
type User struct {
	ID    string `mapstructure:"id"`
	Token string `mapstructure:"token"`
}

// StaticTokens verifies tokens against a fixed list loaded from configuration.
type StaticTokens struct {
	users []User
}

// Ensure StaticTokens implements Verifier at compile time.
var _ Verifier = (*StaticTokens)(nil)

// NewStaticTokens rejects entries with an empty id or token and duplicate
// tokens.
func NewStaticTokens(users []User) (*StaticTokens, error) {
	seen := make(map[string]struct{}, len(users))
	out := make([]User, 0, len(users))
	for i, u := range users {
		u.ID = strings.TrimSpace(u.ID)
		u.Token = strings.TrimSpace(u.Token)
		if u.ID == "" || u.Token == "" {
			return nil, fmt.Errorf("auth user %d: id and token are required", i)
		}
		if _, dup := seen[u.Token]; dup {
			return nil, fmt.Errorf("auth user %q: token already assigned", u.ID)
		}
		seen[u.Token] = struct{}{}
		out = append(out, u)
	}
	return &StaticTokens{users: out}, nil
}

// Verify returns the user id owning token.
func (s *StaticTokens) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("missing token: %w", vocab.ErrUnauthorized)
	}
	for _, u := range s.users {
		if subtle.ConstantTimeCompare([]byte(u.Token), []byte(token)) == 1 {
			return u.ID, nil
		}
	}
	return "", fmt.Errorf("unknown token: %w", vocab.ErrUnauthorized)
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying userID.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the authenticated user id, or "" when there is none.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Middleware attaches the verified user id to the request context. Requests
// without a valid token continue anonymously; the services reject them with
// vocab.ErrUnauthorized.
func Middleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token != "" {
				if id, err := v.Verify(r.Context(), token); err == nil {
					r = r.WithContext(WithUser(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
