package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/service"
)

// Refresher keeps the upcoming-lessons view fresh in the background
// and surfaces lessons that are about to start.
type Refresher struct {
	lessons  *service.LessonService
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

func NewRefresher(lessons *service.LessonService, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		lessons:  lessons,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the background refresh loop
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("Starting background refresher",
		zap.Duration("interval", r.interval))

	go r.run(ctx)
}

// Stop stops the background refresh loop
func (r *Refresher) Stop() {
	r.logger.Info("Stopping background refresher")
	close(r.stopChan)
}

func (r *Refresher) run(ctx context.Context) {
	// First refresh right away at startup
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refresh(ctx)
		case <-r.stopChan:
			r.logger.Info("Refresh task stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Refresh task cancelled")
			return
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	lessons, err := r.lessons.RefreshUpcoming(ctx)
	if err != nil {
		r.logger.Error("Failed to refresh upcoming lessons", zap.Error(err))
		return
	}

	now := time.Now()
	for _, lesson := range lessons {
		until := lesson.StartAt.Sub(now)
		if until > 0 && until <= time.Hour && !lesson.IsCancelled() {
			r.logger.Info("📅 Lesson starting soon",
				zap.Int64("lesson_id", lesson.ID),
				zap.Time("start_at", lesson.StartAt),
				zap.Duration("in", until.Round(time.Minute)))
		}
	}

	r.logger.Debug("Upcoming lessons refreshed", zap.Int("count", len(lessons)))
}
