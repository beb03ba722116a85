package session

import (
	"context"
	"testing"
	"time"

	"github.com/tomraj007/txnportal/internal/domain/auth"
	"github.com/tomraj007/txnportal/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSession(expiry time.Time) *auth.Session {
	return &auth.Session{
		AccessToken: "tok",
		CSRFToken:   "csrf",
		ExpiryDate:  expiry,
		Profile: auth.UserProfile{
			UserName:  "Test User",
			Email:     "test@example.com",
			CompanyID: "c1",
			Roles:     []string{"USER"},
		},
	}
}

func TestStore_SaveAndRead(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvstore.NewMemory(), zap.NewNop())

	require.NoError(t, store.Save(ctx, testSession(time.Now().Add(time.Hour))))

	token, ok := store.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", token)

	csrf, ok := store.CSRFToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "csrf", csrf)

	user, ok := store.User(ctx)
	require.True(t, ok)
	assert.Equal(t, "Test User", user.UserName)
	assert.Equal(t, []string{"USER"}, user.Roles)

	assert.True(t, store.IsAuthenticated(ctx))
}

func TestStore_IsAuthenticated(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		prepare func(ctx context.Context, kv kvstore.Store)
		want    bool
	}{
		{
			name: "token and future expiry",
			prepare: func(ctx context.Context, kv kvstore.Store) {
				kv.Set(ctx, "accessToken", "tok")
				kv.Set(ctx, "expiryDate", now.Add(time.Hour).Format(time.RFC3339))
			},
			want: true,
		},
		{
			name: "expiry exactly now",
			prepare: func(ctx context.Context, kv kvstore.Store) {
				kv.Set(ctx, "accessToken", "tok")
				kv.Set(ctx, "expiryDate", now.Format(time.RFC3339))
			},
			want: false,
		},
		{
			name: "expiry in the past",
			prepare: func(ctx context.Context, kv kvstore.Store) {
				kv.Set(ctx, "accessToken", "tok")
				kv.Set(ctx, "expiryDate", now.Add(-time.Minute).Format(time.RFC3339))
			},
			want: false,
		},
		{
			name: "token without expiry",
			prepare: func(ctx context.Context, kv kvstore.Store) {
				kv.Set(ctx, "accessToken", "tok")
			},
			want: false,
		},
		{
			name: "expiry without token",
			prepare: func(ctx context.Context, kv kvstore.Store) {
				kv.Set(ctx, "expiryDate", now.Add(time.Hour).Format(time.RFC3339))
			},
			want: false,
		},
		{
			name: "malformed expiry",
			prepare: func(ctx context.Context, kv kvstore.Store) {
				kv.Set(ctx, "accessToken", "tok")
				kv.Set(ctx, "expiryDate", "not-a-timestamp")
			},
			want: false,
		},
		{
			name:    "empty storage",
			prepare: func(ctx context.Context, kv kvstore.Store) {},
			want:    false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := context.Background()
			kv := kvstore.NewMemory()
			test.prepare(ctx, kv)

			store := NewStore(kv, zap.NewNop())
			store.now = func() time.Time { return now }

			assert.Equal(t, test.want, store.IsAuthenticated(ctx))
		})
	}
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	store := NewStore(kv, zap.NewNop())

	require.NoError(t, store.Save(ctx, testSession(time.Now().Add(time.Hour))))
	require.NoError(t, store.Clear(ctx))

	for _, key := range []string{"accessToken", "expiryDate", "csrfToken", "userInfo"} {
		_, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "key %s should be absent after Clear", key)
	}
	assert.False(t, store.IsAuthenticated(ctx))

	// Idempotent: a second Clear leaves the same state.
	require.NoError(t, store.Clear(ctx))
	assert.False(t, store.IsAuthenticated(ctx))
}

func TestStore_UserFailsSoft(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
	}{
		{name: "missing", set: false},
		{name: "literal undefined", value: "undefined", set: true},
		{name: "malformed JSON", value: "{not json", set: true},
		{name: "empty string", value: "", set: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := context.Background()
			kv := kvstore.NewMemory()
			if test.set {
				require.NoError(t, kv.Set(ctx, "userInfo", test.value))
			}

			store := NewStore(kv, zap.NewNop())
			user, ok := store.User(ctx)
			assert.False(t, ok)
			assert.Nil(t, user)
		})
	}
}

func TestStore_ChangesStream(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvstore.NewMemory(), zap.NewNop())

	changes := store.Changes(ctx)
	assert.False(t, <-changes, "initial value should reflect empty storage")

	require.NoError(t, store.Save(ctx, testSession(time.Now().Add(time.Hour))))
	assert.True(t, <-changes, "Save should emit true")

	require.NoError(t, store.Clear(ctx))
	assert.False(t, <-changes, "Clear should emit false")
}

func TestStore_SaveOverwritesPriorSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kvstore.NewMemory(), zap.NewNop())

	require.NoError(t, store.Save(ctx, testSession(time.Now().Add(time.Hour))))

	next := testSession(time.Now().Add(2 * time.Hour))
	next.AccessToken = "tok2"
	next.Profile.UserName = "Second User"
	require.NoError(t, store.Save(ctx, next))

	token, _ := store.Token(ctx)
	assert.Equal(t, "tok2", token)
	user, ok := store.User(ctx)
	require.True(t, ok)
	assert.Equal(t, "Second User", user.UserName)
}
