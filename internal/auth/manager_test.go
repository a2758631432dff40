package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/api"
	"github.com/talemy/client-go/internal/model"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestManager(t *testing.T, handler http.Handler) (*Manager, *TokenStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	client := api.NewClient(server.URL, zap.NewNop())
	return NewManager(client, store, zap.NewNop()), store
}

func TestManagerLoginPersistsToken(t *testing.T) {
	mgr, store := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"token": "abc123",
			"user":  map[string]any{"id": 42, "role": "STUDENT", "name": "Léa"},
		})
	}))

	var notified atomic.Int64
	mgr.OnChange(func(s *Session) {
		if s != nil {
			notified.Add(1)
		}
	})

	session, err := mgr.Login(context.Background(), "lea@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc123", session.Token)
	assert.Equal(t, int64(42), session.User.ID)
	assert.Equal(t, model.RoleStudent, session.User.Role)
	assert.Equal(t, int64(1), notified.Load())

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", stored)
}

func TestManagerLoginMapsStatuses(t *testing.T) {
	status := http.StatusUnauthorized
	mgr, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
	}))

	_, err := mgr.Login(context.Background(), "lea@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	status = http.StatusTooManyRequests
	_, err = mgr.Login(context.Background(), "lea@example.com", "wrong")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestManagerResumeExpiredTokenStaysLocal(t *testing.T) {
	var calls atomic.Int64
	mgr, store := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	require.NoError(t, store.Save(signedToken(t, time.Now().Add(-time.Hour))))

	_, err := mgr.Resume(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, int64(0), calls.Load(), "expired token must be discarded without a network call")

	// The expired token is gone from disk
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestManagerResumeNoStoredToken(t *testing.T) {
	mgr, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	}))

	_, err := mgr.Resume(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManagerResumeValidToken(t *testing.T) {
	mgr, store := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		require.Contains(t, r.Header.Get("Authorization"), "Bearer ")
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": 42, "role": "TEACHER"},
		})
	}))

	require.NoError(t, store.Save(signedToken(t, time.Now().Add(time.Hour))))

	session, err := mgr.Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.User.ID)
	assert.True(t, session.User.IsTeacher())
}

func TestManagerResumeRejectedTokenEndsSession(t *testing.T) {
	mgr, store := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token revoked"})
	}))

	require.NoError(t, store.Save(signedToken(t, time.Now().Add(time.Hour))))

	_, err := mgr.Resume(context.Background())
	require.Error(t, err)
	assert.Nil(t, mgr.Session())

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored, "rejected token must not survive for the next run")
}

func TestManagerLogoutNotifiesWithNil(t *testing.T) {
	mgr, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token": "abc123",
			"user":  map[string]any{"id": 42, "role": "STUDENT"},
		})
	}))

	var lastNil atomic.Bool
	mgr.OnChange(func(s *Session) {
		lastNil.Store(s == nil)
	})

	_, err := mgr.Login(context.Background(), "lea@example.com", "secret")
	require.NoError(t, err)
	require.False(t, lastNil.Load())

	mgr.Logout()
	assert.True(t, lastNil.Load())
	assert.Nil(t, mgr.Session())
}

func TestTokenStoreRoundtrip(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token"))

	// Empty before any save
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("abc123"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, tokenExpired(signedToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, tokenExpired(signedToken(t, time.Now().Add(time.Minute))))
	assert.False(t, tokenExpired("not-a-jwt"), "unreadable token is the server's call")
}
