package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/api"
	"github.com/talemy/client-go/internal/cache"
	"github.com/talemy/client-go/internal/model"
)

// Realtime is what the messaging service needs from the live sync
// coordinator: the connectivity flag and the channel send path.
type Realtime interface {
	Connected() bool
	JoinConversation(conversationID int64)
	SendMessage(conversationID int64, content string)
}

// MessagingService reads conversations and history through the query
// cache and sends messages realtime-first with a REST fallback.
type MessagingService struct {
	api      *api.Client
	store    *cache.Store
	realtime Realtime
	logger   *zap.Logger
}

func NewMessagingService(apiClient *api.Client, store *cache.Store, realtime Realtime, logger *zap.Logger) *MessagingService {
	return &MessagingService{
		api:      apiClient,
		store:    store,
		realtime: realtime,
		logger:   logger,
	}
}

// Conversations lists the caller's conversations, served from cache when fresh
func (s *MessagingService) Conversations(ctx context.Context, limit, offset int) ([]model.Conversation, error) {
	key := cache.ConversationsKey(fmt.Sprintf("list:%d:%d", limit, offset))

	value, err := s.store.Get(ctx, key, func(ctx context.Context) (any, error) {
		return s.api.Conversations(ctx, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	return value.([]model.Conversation), nil
}

// Open announces interest in a conversation on the realtime channel so
// its events start flowing. Best-effort: a disconnected channel makes
// this a logged no-op.
func (s *MessagingService) Open(conversationID int64) {
	s.realtime.JoinConversation(conversationID)
}

// Messages returns one page of a conversation's history in display
// order, oldest first. The API serves newest-first; the page is
// reversed here.
func (s *MessagingService) Messages(ctx context.Context, conversationID int64, page, pageSize int) ([]model.Message, error) {
	key := cache.MessagesKey(conversationID)

	value, err := s.store.Get(ctx, key, func(ctx context.Context) (any, error) {
		return s.api.ConversationMessages(ctx, conversationID, page, pageSize)
	})
	if err != nil {
		return nil, err
	}

	fetched := value.(*api.MessagePage)

	// Reverse into a copy: the cached page stays untouched
	messages := make([]model.Message, len(fetched.Messages))
	for i, message := range fetched.Messages {
		messages[len(fetched.Messages)-1-i] = message
	}

	return messages, nil
}

// Send delivers a message, preferring the realtime channel. When the
// channel is down it falls back to the REST endpoint and invalidates
// the affected entries itself (the push event that would normally do it
// will not arrive for the sender's own REST write on a dead channel).
//
// Either way the message is not echoed locally: it appears once the
// next cache refresh picks it up.
func (s *MessagingService) Send(ctx context.Context, conversationID int64, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyMessage
	}

	if s.realtime.Connected() {
		s.realtime.SendMessage(conversationID, content)
		return nil
	}

	s.logger.Debug("Realtime channel down, sending over REST",
		zap.Int64("conversation_id", conversationID))

	if _, err := s.api.SendMessage(ctx, conversationID, content); err != nil {
		return err
	}

	s.store.Invalidate(cache.MessagesKey(conversationID))
	s.store.InvalidateKind(cache.KindConversations)

	return nil
}
