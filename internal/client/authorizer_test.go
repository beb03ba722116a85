package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomraj007/txnportal/internal/domain/auth"
	"github.com/tomraj007/txnportal/internal/kvstore"
	"github.com/tomraj007/txnportal/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(kvstore.NewMemory(), zap.NewNop())
}

func saveSession(t *testing.T, store *session.Store, token string) {
	t.Helper()
	err := store.Save(context.Background(), &auth.Session{
		AccessToken: token,
		CSRFToken:   "csrf-1",
		ExpiryDate:  time.Now().Add(time.Hour),
		Profile:     auth.UserProfile{UserName: "Test User", Email: "test@example.com"},
	})
	require.NoError(t, err)
}

func TestAuthorizedTransport_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newTestStore(t)
	saveSession(t, store, "tok-123")
	hc := &http.Client{Transport: NewAuthorizedTransport(nil, store, nil, zap.NewNop())}

	resp, err := hc.Get(srv.URL + ReportPath)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestAuthorizedTransport_SkipsLoginEndpoint(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newTestStore(t)
	saveSession(t, store, "tok-123")
	hc := &http.Client{Transport: NewAuthorizedTransport(nil, store, nil, zap.NewNop())}

	resp, err := hc.Get(srv.URL + LoginPath)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth, "login requests must go out without a token")
}

func TestAuthorizedTransport_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hc := &http.Client{Transport: NewAuthorizedTransport(nil, newTestStore(t), nil, zap.NewNop())}

	resp, err := hc.Get(srv.URL + ReportPath)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestAuthorizedTransport_DoesNotMutateOriginalRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newTestStore(t)
	saveSession(t, store, "tok-123")
	transport := NewAuthorizedTransport(nil, store, nil, zap.NewNop())

	req, err := http.NewRequest(http.MethodGet, srv.URL+ReportPath, nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestAuthorizedTransport_UnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newTestStore(t)
	saveSession(t, store, "tok-123")

	hooked := false
	hc := &http.Client{Transport: NewAuthorizedTransport(nil, store, func() { hooked = true }, zap.NewNop())}

	resp, err := hc.Get(srv.URL + ReportPath)
	require.NoError(t, err, "the 401 response must pass through, not become a transport error")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.True(t, hooked)

	_, ok := store.Token(context.Background())
	assert.False(t, ok, "session must be cleared after a 401")
	assert.False(t, store.IsAuthenticated(context.Background()))
}

func TestAuthorizedTransport_UnauthorizedOnLoginStillClears(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newTestStore(t)
	saveSession(t, store, "stale-token")

	hooked := false
	hc := &http.Client{Transport: NewAuthorizedTransport(nil, store, func() { hooked = true }, zap.NewNop())}

	resp, err := hc.Get(srv.URL + LoginPath)
	require.NoError(t, err)
	resp.Body.Close()

	assert.True(t, hooked)
	_, ok := store.Token(context.Background())
	assert.False(t, ok)
}
