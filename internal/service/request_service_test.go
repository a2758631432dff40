package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/api"
	"github.com/talemy/client-go/internal/cache"
	"github.com/talemy/client-go/internal/model"
)

func TestRequestServiceWithdrawPendingOnly(t *testing.T) {
	var deletes atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/requests/me":
			assert.Equal(t, "PENDING", r.URL.Query().Get("status"))
			json.NewEncoder(w).Encode(map[string]any{
				"contactRequests": []map[string]any{
					{"id": 1, "studentUserId": 20, "teacherUserId": 10, "status": "PENDING"},
				},
			})
		case r.Method == http.MethodDelete:
			deletes.Add(1)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	svc := NewRequestService(api.NewClient(server.URL, zap.NewNop()), cache.NewStore(zap.NewNop()), zap.NewNop())

	// Request 2 is not in the caller's pending list: rejected locally
	err := svc.Withdraw(context.Background(), 2)
	assert.ErrorIs(t, err, ErrRequestNotPending)
	assert.Equal(t, int64(0), deletes.Load())

	// Request 1 is pending and can be withdrawn
	require.NoError(t, svc.Withdraw(context.Background(), 1))
	assert.Equal(t, int64(1), deletes.Load())
}

func TestRequestServiceCreateRejectsEmptyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected for empty message")
	}))
	defer server.Close()

	svc := NewRequestService(api.NewClient(server.URL, zap.NewNop()), cache.NewStore(zap.NewNop()), zap.NewNop())

	_, err := svc.Create(context.Background(), 10, "  ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestRequestServiceDecisionInvalidatesLists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/requests/me":
			json.NewEncoder(w).Encode(map[string]any{
				"contactRequests": []map[string]any{{"id": 1, "status": "PENDING"}},
			})
		case "/requests/1":
			require.Equal(t, http.MethodPatch, r.Method)
			json.NewEncoder(w).Encode(map[string]any{"id": 1, "status": "ACCEPTED"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := cache.NewStore(zap.NewNop())
	svc := NewRequestService(api.NewClient(server.URL, zap.NewNop()), store, zap.NewNop())

	var fetches atomic.Int64
	_, err := store.Get(context.Background(), cache.RequestsKey("me:PENDING"), func(ctx context.Context) (any, error) {
		fetches.Add(1)
		return []model.ContactRequest{}, nil
	})
	require.NoError(t, err)

	request, err := svc.Accept(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.ContactRequestAccepted, request.Status)

	// The accept invalidated the request list: the next read refetches
	_, err = store.Get(context.Background(), cache.RequestsKey("me:PENDING"), func(ctx context.Context) (any, error) {
		fetches.Add(1)
		return []model.ContactRequest{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), fetches.Load())
}
