package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/model"
)

func TestClientLoginAndMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			require.Equal(t, http.MethodPost, r.Method)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "eleve@talemy.fr", body["email"])

			json.NewEncoder(w).Encode(map[string]any{
				"token": "jwt-token",
				"user":  map[string]any{"id": 20, "name": "Léa", "surname": "Martin", "role": "STUDENT"},
			})
		case "/auth/me":
			assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"id": 20, "name": "Léa", "surname": "Martin", "role": "STUDENT"},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	resp, err := client.Login(context.Background(), "eleve@talemy.fr", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, int64(20), resp.User.ID)
	assert.True(t, resp.User.IsStudent())

	client.SetToken(resp.Token)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Léa", user.Name)
}

func TestClientMyLessonsQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/lessons/me", r.URL.Path)
		assert.Equal(t, "CONFIRMED", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))

		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{
				"id":               1,
				"teacherUserId":    10,
				"studentUserId":    20,
				"statusForStudent": "CONFIRMED",
				"statusForTeacher": "CONFIRMED",
			}},
			"page":     2,
			"pageSize": 10,
			"total":    11,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	client.SetToken("jwt-token")

	page, err := client.MyLessons(context.Background(), LessonListParams{
		Status:   model.LessonStatusConfirmed,
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 11, page.Total)
	assert.True(t, page.Items[0].IsConfirmed())
}

func TestClientUpdateLessonStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/lessons/5/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CANCELLED", body["status"])

		json.NewEncoder(w).Encode(map[string]any{
			"lesson": map[string]any{"id": 5, "statusForStudent": "CANCELLED", "statusForTeacher": "PENDING"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	lesson, err := client.UpdateLessonStatus(context.Background(), 5, model.LessonStatusCancelled)
	require.NoError(t, err)
	assert.True(t, lesson.IsCancelled())
}

func TestClientErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	_, err := client.Login(context.Background(), "eleve@talemy.fr", "wrong")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, IsStatus(err, http.StatusTooManyRequests))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestClientMessagesNewestFirstPassedThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversations/42/messages", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"messages": []map[string]any{
				{"id": 3, "senderUserId": 10, "content": "dernier"},
				{"id": 2, "senderUserId": 20, "content": "milieu"},
				{"id": 1, "senderUserId": 10, "content": "premier"},
			},
			"page":     1,
			"pageSize": 50,
			"total":    3,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	page, err := client.ConversationMessages(context.Background(), 42, 1, 50)
	require.NoError(t, err)
	require.Len(t, page.Messages, 3)

	// The API convention is newest first; the client does not reorder here
	assert.Equal(t, int64(3), page.Messages[0].ID)
	assert.Equal(t, int64(1), page.Messages[2].ID)
}

func TestClientDeleteContactRequestNoBody(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/requests/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	require.NoError(t, client.DeleteContactRequest(context.Background(), 9))
	assert.True(t, called)
}

func TestClientSearchTeachersQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teachers", r.URL.Path)
		assert.Equal(t, "Lyon", r.URL.Query().Get("city"))
		assert.Equal(t, "3", r.URL.Query().Get("subjectId"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Empty(t, r.URL.Query().Get("pageSize"))

		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": 1, "userId": 11, "city": "Lyon", "ratingAvg": "4.8"},
			},
			"page": 2, "pageSize": 10, "total": 14,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	page, err := client.SearchTeachers(context.Background(), TeacherSearchParams{
		City:      "Lyon",
		SubjectID: 3,
		Page:      2,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Lyon", page.Items[0].City)
	assert.Equal(t, 14, page.Total)
}

func TestClientTeacherDetailAndReviews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teachers/11":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 1, "userId": 11, "bio": "Prof de maths", "hourlyRate": 35.0,
			})
		case "/reviews/teacher/11":
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": 5, "teacherUserId": 11, "rating": 5, "comment": "Très pédagogue"},
				},
				"page": 1, "pageSize": 10, "total": 1,
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	profile, err := client.TeacherByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(11), profile.UserID)
	assert.Equal(t, 35.0, profile.HourlyRate)

	reviews, err := client.TeacherReviews(context.Background(), 11, 1, 10)
	require.NoError(t, err)
	require.Len(t, reviews.Items, 1)
	assert.Equal(t, 5, reviews.Items[0].Rating)
}
