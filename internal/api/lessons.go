package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/talemy/client-go/internal/model"
)

// LessonListParams filters and paginates the caller's lesson list
type LessonListParams struct {
	Status   model.LessonStatus
	Page     int
	PageSize int
}

func (p LessonListParams) query() string {
	values := url.Values{}
	if p.Status != "" {
		values.Set("status", string(p.Status))
	}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// LessonPage is one page of the caller's lessons
type LessonPage struct {
	Items    []model.Lesson `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int            `json:"total"`
}

// MyLessons lists the caller's lessons with pagination and optional status filter
func (c *Client) MyLessons(ctx context.Context, params LessonListParams) (*LessonPage, error) {
	var page LessonPage
	if err := c.do(ctx, http.MethodGet, "/lessons/me"+params.query(), nil, &page); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	return &page, nil
}

// UpcomingLessons lists the caller's upcoming lessons
func (c *Client) UpcomingLessons(ctx context.Context) ([]model.Lesson, error) {
	var resp struct {
		Lessons []model.Lesson `json:"lessons"`
	}
	if err := c.do(ctx, http.MethodGet, "/lessons/upcoming", nil, &resp); err != nil {
		return nil, fmt.Errorf("list upcoming lessons: %w", err)
	}

	return resp.Lessons, nil
}

// UpdateLessonStatus updates the caller's own status on a lesson
func (c *Client) UpdateLessonStatus(ctx context.Context, lessonID int64, status model.LessonStatus) (*model.Lesson, error) {
	body := map[string]model.LessonStatus{"status": status}

	var resp struct {
		Lesson model.Lesson `json:"lesson"`
	}
	path := fmt.Sprintf("/lessons/%d/status", lessonID)
	if err := c.do(ctx, http.MethodPatch, path, body, &resp); err != nil {
		return nil, fmt.Errorf("update lesson status: %w", err)
	}

	return &resp.Lesson, nil
}

// CreateLessonParams is the payload for proposing a new lesson
type CreateLessonParams struct {
	TeacherUserID int64     `json:"teacherUserId"`
	StudentUserID int64     `json:"studentUserId"`
	SubjectID     int64     `json:"subjectId"`
	StartAt       time.Time `json:"startAt"`
	DurationMin   int       `json:"durationMin"`
}

// CreateLesson proposes a new lesson. The server initializes both
// per-party statuses to PENDING.
func (c *Client) CreateLesson(ctx context.Context, params CreateLessonParams) (*model.Lesson, error) {
	var resp struct {
		Lesson model.Lesson `json:"lesson"`
	}
	if err := c.do(ctx, http.MethodPost, "/lessons", params, &resp); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	return &resp.Lesson, nil
}
