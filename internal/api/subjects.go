package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/talemy/client-go/internal/model"
)

// Subjects lists all subjects (public endpoint)
func (c *Client) Subjects(ctx context.Context) ([]model.Subject, error) {
	var resp struct {
		Subjects []model.Subject `json:"subjects"`
	}
	if err := c.do(ctx, http.MethodGet, "/subjects", nil, &resp); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	return resp.Subjects, nil
}
