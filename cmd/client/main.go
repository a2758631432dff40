package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/api"
	"github.com/talemy/client-go/internal/app"
	"github.com/talemy/client-go/internal/auth"
	"github.com/talemy/client-go/internal/cache"
	"github.com/talemy/client-go/internal/config"
	"github.com/talemy/client-go/internal/livesync"
	"github.com/talemy/client-go/internal/model"
	"github.com/talemy/client-go/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting Talemy client",
		zap.String("environment", cfg.Environment),
		zap.String("api_base_url", cfg.APIBaseURL))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiClient := api.NewClient(cfg.APIBaseURL, logger)
	store := cache.NewStore(logger)
	sessions := auth.NewManager(apiClient, auth.NewTokenStore(cfg.TokenFile), logger)

	// Resume the stored session, or log in with configured credentials
	session, err := sessions.Resume(ctx)
	if err != nil {
		if !errors.Is(err, auth.ErrNoSession) {
			logger.Warn("Could not resume stored session", zap.Error(err))
		}
		if cfg.Email == "" || cfg.Password == "" {
			logger.Fatal("No session to resume and no credentials configured")
		}

		session, err = sessions.Login(ctx, cfg.Email, cfg.Password)
		if err != nil {
			logger.Fatal("Login failed",
				zap.Error(err),
				zap.String("user_message", service.UserMessage(err)))
		}
	}

	// The realtime channel and the cache live and die with the session
	coordinator := livesync.New(
		store,
		livesync.SocketDialer(cfg.SocketURL, logger),
		logger,
		livesync.WithReconnect(cfg.ReconnectAttempts, cfg.ReconnectDelay),
	)
	coordinator.Start(ctx, session.Token)
	defer coordinator.Close()

	sessions.OnChange(func(s *auth.Session) {
		coordinator.Close()
		store.Clear()
		if s != nil {
			coordinator.Start(ctx, s.Token)
		}
	})

	lessons := service.NewLessonService(apiClient, store, logger)
	messaging := service.NewMessagingService(apiClient, store, coordinator, logger)
	requests := service.NewRequestService(apiClient, store, logger)

	// Warm the session-critical lists so the first reads are instant
	if _, err := messaging.Conversations(ctx, 20, 0); err != nil {
		logger.Warn("Failed to prefetch conversations", zap.Error(err))
	}
	if _, err := requests.MyRequests(ctx, model.ContactRequestPending); err != nil {
		logger.Warn("Failed to prefetch contact requests", zap.Error(err))
	}

	refresher := app.NewRefresher(lessons, cfg.RefreshInterval, logger)
	refresher.Start(ctx)
	defer refresher.Stop()

	<-ctx.Done()
	logger.Info("Shutting down")
}
