package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/talemy/client-go/internal/model"
)

// MyContactRequests lists the caller's contact requests: sent requests
// for a student, received requests for a teacher.
func (c *Client) MyContactRequests(ctx context.Context, status model.ContactRequestStatus) ([]model.ContactRequest, error) {
	path := "/requests/me"
	if status != "" {
		path += "?status=" + string(status)
	}

	var resp struct {
		ContactRequests []model.ContactRequest `json:"contactRequests"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list contact requests: %w", err)
	}

	return resp.ContactRequests, nil
}

// CreateContactRequest sends a new contact request to a teacher
func (c *Client) CreateContactRequest(ctx context.Context, teacherUserID int64, message string) (*model.ContactRequest, error) {
	body := map[string]any{
		"teacherUserId": teacherUserID,
		"message":       message,
	}

	var resp struct {
		ContactRequest model.ContactRequest `json:"contactRequest"`
	}
	if err := c.do(ctx, http.MethodPost, "/requests", body, &resp); err != nil {
		return nil, fmt.Errorf("create contact request: %w", err)
	}

	return &resp.ContactRequest, nil
}

// UpdateContactRequest accepts or rejects a contact request (teacher side)
func (c *Client) UpdateContactRequest(ctx context.Context, requestID int64, status model.ContactRequestStatus) (*model.ContactRequest, error) {
	body := map[string]model.ContactRequestStatus{"status": status}

	var request model.ContactRequest
	path := fmt.Sprintf("/requests/%d", requestID)
	if err := c.do(ctx, http.MethodPatch, path, body, &request); err != nil {
		return nil, fmt.Errorf("update contact request: %w", err)
	}

	return &request, nil
}

// DeleteContactRequest withdraws a contact request (student side)
func (c *Client) DeleteContactRequest(ctx context.Context, requestID int64) error {
	path := fmt.Sprintf("/requests/%d", requestID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete contact request: %w", err)
	}

	return nil
}
