package collab

import (
	"context"
	"net/http"
	"strings"
)

// StaticIdentity authenticates against a fixed token-to-user map, the shape
// the platform's identity provider exposes to this service.
type StaticIdentity struct {
	tokens map[string]string
}

// NewStaticIdentity creates an identity provider over a token -> user id map.
func NewStaticIdentity(tokens map[string]string) *StaticIdentity {
	if tokens == nil {
		tokens = make(map[string]string)
	}
	return &StaticIdentity{tokens: tokens}
}

// Authenticate implements Identity.
func (s *StaticIdentity) Authenticate(ctx context.Context, token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrUnauthenticated
	}
	userID, ok := s.tokens[token]
	if !ok {
		return Principal{}, ErrUnauthenticated
	}
	return Principal{ID: userID}, nil
}

// BearerToken extracts the bearer token from a request, or "" if absent.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
