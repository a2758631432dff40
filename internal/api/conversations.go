package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/talemy/client-go/internal/model"
)

// Conversations lists the caller's conversations, most recently active first
func (c *Client) Conversations(ctx context.Context, limit, offset int) ([]model.Conversation, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		values.Set("offset", strconv.Itoa(offset))
	}

	path := "/conversations"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var resp struct {
		Conversations []model.Conversation `json:"conversations"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	return resp.Conversations, nil
}

// MessagePage is one page of conversation messages, newest first by
// API convention. Callers reverse for display.
type MessagePage struct {
	Messages []model.Message `json:"messages"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Total    int             `json:"total"`
}

// ConversationMessages fetches one page of a conversation's history
func (c *Client) ConversationMessages(ctx context.Context, conversationID int64, page, pageSize int) (*MessagePage, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		values.Set("pageSize", strconv.Itoa(pageSize))
	}

	path := fmt.Sprintf("/conversations/%d/messages", conversationID)
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var messagePage MessagePage
	if err := c.do(ctx, http.MethodGet, path, nil, &messagePage); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return &messagePage, nil
}

// SendMessage posts a message over REST. This is the fallback path used
// when the realtime channel is not connected.
func (c *Client) SendMessage(ctx context.Context, conversationID int64, content string) (*model.Message, error) {
	body := map[string]string{"content": content}

	var message model.Message
	path := fmt.Sprintf("/conversations/%d/messages", conversationID)
	if err := c.do(ctx, http.MethodPost, path, body, &message); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	return &message, nil
}
