// internal/client/authorizer.go
package client

import (
	"net/http"
	"strings"

	"github.com/tomraj007/txnportal/internal/session"
	"go.uber.org/zap"
)

// AuthorizedTransport runs around every outgoing request. It is the only
// place a bearer token is attached and the only place a 401 forces logout.
type AuthorizedTransport struct {
	base           http.RoundTripper
	store          *session.Store
	onUnauthorized func()
	logger         *zap.Logger
}

func NewAuthorizedTransport(base http.RoundTripper, store *session.Store, onUnauthorized func(), logger *zap.Logger) *AuthorizedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthorizedTransport{
		base:           base,
		store:          store,
		onUnauthorized: onUnauthorized,
		logger:         logger,
	}
}

// RoundTrip attaches the stored token to a copy of the request unless the
// request targets the login endpoint; the original request is never
// mutated. A 401 from any endpoint clears the session and sends the
// caller back to the login surface, then passes the response through.
func (t *AuthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req
	if token, ok := t.store.Token(req.Context()); ok && !strings.Contains(req.URL.Path, "/login") {
		out = req.Clone(req.Context())
		out.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.logger.Warn("request rejected as unauthorized, forcing logout",
			zap.String("path", req.URL.Path),
		)
		if err := t.store.Clear(req.Context()); err != nil {
			t.logger.Error("failed to clear session after 401", zap.Error(err))
		}
		if t.onUnauthorized != nil {
			t.onUnauthorized()
		}
	}

	return resp, nil
}
