package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/api"
	"github.com/talemy/client-go/internal/cache"
	"github.com/talemy/client-go/internal/model"
)

// RequestService handles contact requests: created by students,
// accepted or rejected by teachers, withdrawable by students while
// still pending.
type RequestService struct {
	api    *api.Client
	store  *cache.Store
	logger *zap.Logger
}

func NewRequestService(apiClient *api.Client, store *cache.Store, logger *zap.Logger) *RequestService {
	return &RequestService{
		api:    apiClient,
		store:  store,
		logger: logger,
	}
}

// MyRequests lists the caller's contact requests, served from cache when fresh
func (s *RequestService) MyRequests(ctx context.Context, status model.ContactRequestStatus) ([]model.ContactRequest, error) {
	key := cache.RequestsKey("me:" + string(status))

	value, err := s.store.Get(ctx, key, func(ctx context.Context) (any, error) {
		return s.api.MyContactRequests(ctx, status)
	})
	if err != nil {
		return nil, err
	}

	return value.([]model.ContactRequest), nil
}

// Create sends a contact request to a teacher (student side)
func (s *RequestService) Create(ctx context.Context, teacherUserID int64, message string) (*model.ContactRequest, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	request, err := s.api.CreateContactRequest(ctx, teacherUserID, message)
	if err != nil {
		return nil, err
	}

	s.store.InvalidateKind(cache.KindRequests)

	s.logger.Info("Contact request sent",
		zap.Int64("request_id", request.ID),
		zap.Int64("teacher_user_id", teacherUserID))

	return request, nil
}

// Accept accepts a pending contact request (teacher side). Acceptance
// spawns a conversation, so both lists are invalidated.
func (s *RequestService) Accept(ctx context.Context, requestID int64) (*model.ContactRequest, error) {
	return s.decide(ctx, requestID, model.ContactRequestAccepted)
}

// Reject rejects a pending contact request (teacher side)
func (s *RequestService) Reject(ctx context.Context, requestID int64) (*model.ContactRequest, error) {
	return s.decide(ctx, requestID, model.ContactRequestRejected)
}

func (s *RequestService) decide(ctx context.Context, requestID int64, status model.ContactRequestStatus) (*model.ContactRequest, error) {
	request, err := s.api.UpdateContactRequest(ctx, requestID, status)
	if err != nil {
		return nil, err
	}

	s.store.InvalidateKind(cache.KindRequests)
	s.store.InvalidateKind(cache.KindConversations)

	s.logger.Info("Contact request decided",
		zap.Int64("request_id", requestID),
		zap.String("status", string(status)))

	return request, nil
}

// Withdraw deletes the caller's own contact request (student side).
// Only pending requests can be withdrawn; the guard runs before any
// network call.
func (s *RequestService) Withdraw(ctx context.Context, requestID int64) error {
	pending, err := s.MyRequests(ctx, model.ContactRequestPending)
	if err != nil {
		return err
	}

	found := false
	for _, request := range pending {
		if request.ID == requestID {
			found = true
			break
		}
	}
	if !found {
		return ErrRequestNotPending
	}

	if err := s.api.DeleteContactRequest(ctx, requestID); err != nil {
		return err
	}

	s.store.InvalidateKind(cache.KindRequests)
	s.store.InvalidateKind(cache.KindConversations)

	s.logger.Info("Contact request withdrawn", zap.Int64("request_id", requestID))

	return nil
}
