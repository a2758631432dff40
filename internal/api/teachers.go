package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/talemy/client-go/internal/model"
)

// TeacherSearchParams filters the public teacher search
type TeacherSearchParams struct {
	City      string
	SubjectID int64
	Page      int
	PageSize  int
}

// TeacherPage is one page of teacher search results
type TeacherPage struct {
	Items    []model.TeacherProfile `json:"items"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
	Total    int                    `json:"total"`
}

// SearchTeachers searches public teacher profiles
func (c *Client) SearchTeachers(ctx context.Context, params TeacherSearchParams) (*TeacherPage, error) {
	values := url.Values{}
	if params.City != "" {
		values.Set("city", params.City)
	}
	if params.SubjectID > 0 {
		values.Set("subjectId", strconv.FormatInt(params.SubjectID, 10))
	}
	if params.Page > 0 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(params.PageSize))
	}

	path := "/teachers"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var page TeacherPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, fmt.Errorf("search teachers: %w", err)
	}

	return &page, nil
}

// TeacherByID fetches one public teacher profile
func (c *Client) TeacherByID(ctx context.Context, teacherUserID int64) (*model.TeacherProfile, error) {
	var profile model.TeacherProfile
	path := fmt.Sprintf("/teachers/%d", teacherUserID)
	if err := c.do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}

	return &profile, nil
}

// MyTeacherProfile fetches the caller's own teacher profile
func (c *Client) MyTeacherProfile(ctx context.Context) (*model.TeacherProfile, error) {
	var resp struct {
		Profile model.TeacherProfile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/teachers/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("get my teacher profile: %w", err)
	}

	return &resp.Profile, nil
}

// TeacherProfileUpdate carries profile fields to change; nil fields are
// left untouched by the server.
type TeacherProfileUpdate struct {
	Bio        *string  `json:"bio,omitempty"`
	City       *string  `json:"city,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
}

// UpdateMyTeacherProfile patches the caller's teacher profile
func (c *Client) UpdateMyTeacherProfile(ctx context.Context, update TeacherProfileUpdate) (*model.TeacherProfile, error) {
	var resp struct {
		Profile model.TeacherProfile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPatch, "/teachers/me", update, &resp); err != nil {
		return nil, fmt.Errorf("update my teacher profile: %w", err)
	}

	return &resp.Profile, nil
}

// UpdateMyTeacherSubjects replaces the set of subjects the caller teaches
func (c *Client) UpdateMyTeacherSubjects(ctx context.Context, subjectIDs []int64) (*model.TeacherProfile, error) {
	body := map[string][]int64{"subjectIds": subjectIDs}

	var resp struct {
		Profile model.TeacherProfile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPut, "/teachers/me/subjects", body, &resp); err != nil {
		return nil, fmt.Errorf("update my subjects: %w", err)
	}

	return &resp.Profile, nil
}
