// Package session owns the portal's authentication state: the persisted
// token material and its expiry lifecycle.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/tomraj007/txnportal/internal/domain/auth"
	"github.com/tomraj007/txnportal/internal/kvstore"
	"go.uber.org/zap"
)

// The four durable keys. They are treated as one logical record: a session
// is saved and cleared whole, never piecemeal.
const (
	keyAccessToken = "accessToken"
	keyExpiryDate  = "expiryDate"
	keyCSRFToken   = "csrfToken"
	keyUserInfo    = "userInfo"
)

// Store is the single writer of session state. Everything else (the
// request authorizer, the expiry watcher) reads through it.
type Store struct {
	kv     kvstore.Store
	logger *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	subs []chan bool
}

func NewStore(kv kvstore.Store, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
}

// Save persists all four session fields, overwriting any prior session.
// Callers never observe a partial write: reads go through the same mutex,
// and a failed write clears whatever landed before the failure.
func (s *Store) Save(ctx context.Context, sess *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode user profile: %w", err)
	}

	writes := map[string]string{
		keyAccessToken: sess.AccessToken,
		keyExpiryDate:  sess.ExpiryDate.Format(time.RFC3339),
		keyCSRFToken:   sess.CSRFToken,
		keyUserInfo:    string(profile),
	}
	for _, key := range []string{keyAccessToken, keyExpiryDate, keyCSRFToken, keyUserInfo} {
		if err := s.kv.Set(ctx, key, writes[key]); err != nil {
			s.clearLocked(ctx)
			s.broadcast(false)
			return fmt.Errorf("failed to persist session: %w", err)
		}
	}

	s.broadcast(s.isAuthenticatedLocked(ctx))
	return nil
}

// Clear removes all four fields. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.clearLocked(ctx)
	s.broadcast(false)
	return err
}

func (s *Store) clearLocked(ctx context.Context) error {
	var firstErr error
	for _, key := range []string{keyAccessToken, keyExpiryDate, keyCSRFToken, keyUserInfo} {
		if err := s.kv.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to clear session: %w", err)
		}
	}
	return firstErr
}

// Token returns the current access token, if one is stored.
func (s *Store) Token(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx, keyAccessToken)
}

// CSRFToken returns the stored CSRF token, if any.
func (s *Store) CSRFToken(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx, keyCSRFToken)
}

// Expiry returns the stored expiry timestamp, if present and parseable.
func (s *Store) Expiry(ctx context.Context) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiryLocked(ctx)
}

func (s *Store) expiryLocked(ctx context.Context) (time.Time, bool) {
	raw, ok := s.get(ctx, keyExpiryDate)
	if !ok {
		return time.Time{}, false
	}
	expiry, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		s.logger.Warn("malformed expiry timestamp in session storage", zap.String("value", raw))
		return time.Time{}, false
	}
	return expiry, true
}

// User returns the persisted profile. Fails soft: missing data, the literal
// string "undefined", or malformed JSON all read as absent, never as an error.
func (s *Store) User(ctx context.Context) (*auth.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.get(ctx, keyUserInfo)
	if !ok || raw == "" || raw == "undefined" {
		return nil, false
	}

	var profile auth.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		s.logger.Warn("malformed user profile in session storage", zap.Error(err))
		return nil, false
	}
	return &profile, true
}

// IsAuthenticated reports whether a token and expiry are both stored and
// the expiry is strictly in the future.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticatedLocked(ctx)
}

func (s *Store) isAuthenticatedLocked(ctx context.Context) bool {
	if _, ok := s.get(ctx, keyAccessToken); !ok {
		return false
	}
	expiry, ok := s.expiryLocked(ctx)
	if !ok {
		return false
	}
	return expiry.After(s.now())
}

// Changes returns a stream of the authentication flag. The current value
// is delivered first; every Save and Clear emits afterwards.
func (s *Store) Changes(ctx context.Context) <-chan bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan bool, 8)
	ch <- s.isAuthenticatedLocked(ctx)
	s.subs = append(s.subs, ch)
	return ch
}

// broadcast delivers without blocking; a subscriber that stopped draining
// misses intermediate values but always converges on the latest state.
func (s *Store) broadcast(authenticated bool) {
	for _, ch := range s.subs {
		select {
		case ch <- authenticated:
		default:
		}
	}
}

func (s *Store) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("session storage read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
