package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/api"
	"github.com/talemy/client-go/internal/cache"
	"github.com/talemy/client-go/internal/model"
)

// LessonService reads lessons through the query cache and pushes the
// viewer's confirmation decisions to the API.
type LessonService struct {
	api    *api.Client
	store  *cache.Store
	logger *zap.Logger
}

func NewLessonService(apiClient *api.Client, store *cache.Store, logger *zap.Logger) *LessonService {
	return &LessonService{
		api:    apiClient,
		store:  store,
		logger: logger,
	}
}

// MyLessons lists the caller's lessons, served from cache when fresh
func (s *LessonService) MyLessons(ctx context.Context, params api.LessonListParams) (*api.LessonPage, error) {
	key := cache.LessonsKey(fmt.Sprintf("me:%s:%d:%d", params.Status, params.Page, params.PageSize))

	value, err := s.store.Get(ctx, key, func(ctx context.Context) (any, error) {
		return s.api.MyLessons(ctx, params)
	})
	if err != nil {
		return nil, err
	}

	return value.(*api.LessonPage), nil
}

// Upcoming lists the caller's upcoming lessons, served from cache when fresh
func (s *LessonService) Upcoming(ctx context.Context) ([]model.Lesson, error) {
	value, err := s.store.Get(ctx, cache.UpcomingLessonsKey(), func(ctx context.Context) (any, error) {
		return s.api.UpcomingLessons(ctx)
	})
	if err != nil {
		return nil, err
	}

	return value.([]model.Lesson), nil
}

// RefreshUpcoming forces a refetch of the upcoming lessons list
func (s *LessonService) RefreshUpcoming(ctx context.Context) ([]model.Lesson, error) {
	s.store.Invalidate(cache.UpcomingLessonsKey())
	return s.Upcoming(ctx)
}

// Confirm sets the caller's own lesson status to CONFIRMED
func (s *LessonService) Confirm(ctx context.Context, lessonID int64) (*model.Lesson, error) {
	return s.updateStatus(ctx, lessonID, model.LessonStatusConfirmed)
}

// Cancel sets the caller's own lesson status to CANCELLED. Terminal:
// either party cancelling cancels the lesson for both.
func (s *LessonService) Cancel(ctx context.Context, lessonID int64) (*model.Lesson, error) {
	return s.updateStatus(ctx, lessonID, model.LessonStatusCancelled)
}

func (s *LessonService) updateStatus(ctx context.Context, lessonID int64, status model.LessonStatus) (*model.Lesson, error) {
	lesson, err := s.api.UpdateLessonStatus(ctx, lessonID, status)
	if err != nil {
		return nil, err
	}

	s.store.InvalidateKind(cache.KindLessons)

	s.logger.Info("Lesson status updated",
		zap.Int64("lesson_id", lessonID),
		zap.String("status", string(status)))

	return lesson, nil
}

// Propose creates a new lesson proposal. Both per-party statuses start
// as PENDING on the server.
func (s *LessonService) Propose(ctx context.Context, params api.CreateLessonParams) (*model.Lesson, error) {
	if params.TeacherUserID == 0 || params.StudentUserID == 0 || params.SubjectID == 0 {
		return nil, ErrInvalidLesson
	}
	if params.DurationMin <= 0 {
		return nil, ErrInvalidLesson
	}
	if params.StartAt.Before(time.Now()) {
		return nil, ErrInvalidLesson
	}

	lesson, err := s.api.CreateLesson(ctx, params)
	if err != nil {
		return nil, err
	}

	s.store.InvalidateKind(cache.KindLessons)

	s.logger.Info("Lesson proposed",
		zap.Int64("lesson_id", lesson.ID),
		zap.Int64("teacher_user_id", params.TeacherUserID),
		zap.Int64("student_user_id", params.StudentUserID))

	return lesson, nil
}

// DisplayStatus resolves the display status of a lesson for the viewer
func (s *LessonService) DisplayStatus(lesson *model.Lesson, viewer *model.User) model.LessonStatusInfo {
	return lesson.DisplayStatus(viewer)
}
