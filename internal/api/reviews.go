package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/talemy/client-go/internal/model"
)

// ReviewPage is one page of a teacher's reviews
type ReviewPage struct {
	Items    []model.Review `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int            `json:"total"`
}

// TeacherReviews lists the reviews left for a teacher (public endpoint)
func (c *Client) TeacherReviews(ctx context.Context, teacherUserID int64, page, pageSize int) (*ReviewPage, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		values.Set("pageSize", strconv.Itoa(pageSize))
	}

	path := fmt.Sprintf("/reviews/teacher/%d", teacherUserID)
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var reviewPage ReviewPage
	if err := c.do(ctx, http.MethodGet, path, nil, &reviewPage); err != nil {
		return nil, fmt.Errorf("list teacher reviews: %w", err)
	}

	return &reviewPage, nil
}
