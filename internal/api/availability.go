package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/talemy/client-go/internal/model"
)

// SlotInput is the payload for creating or updating an availability slot
type SlotInput struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// MyAvailability lists the caller's availability slots
func (c *Client) MyAvailability(ctx context.Context) ([]model.AvailabilitySlot, error) {
	var resp struct {
		Slots []model.AvailabilitySlot `json:"slots"`
	}
	if err := c.do(ctx, http.MethodGet, "/availability/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	return resp.Slots, nil
}

// TeacherAvailability lists a teacher's public availability slots
func (c *Client) TeacherAvailability(ctx context.Context, teacherUserID int64) ([]model.AvailabilitySlot, error) {
	var resp struct {
		Slots []model.AvailabilitySlot `json:"slots"`
	}
	path := fmt.Sprintf("/availability/teacher/%d", teacherUserID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list teacher availability: %w", err)
	}

	return resp.Slots, nil
}

// CreateAvailabilitySlot adds a weekly availability slot
func (c *Client) CreateAvailabilitySlot(ctx context.Context, input SlotInput) (*model.AvailabilitySlot, error) {
	var resp struct {
		Slot model.AvailabilitySlot `json:"slot"`
	}
	if err := c.do(ctx, http.MethodPost, "/availability", input, &resp); err != nil {
		return nil, fmt.Errorf("create availability slot: %w", err)
	}

	return &resp.Slot, nil
}

// UpdateAvailabilitySlot modifies an existing availability slot
func (c *Client) UpdateAvailabilitySlot(ctx context.Context, slotID int64, input SlotInput) (*model.AvailabilitySlot, error) {
	var resp struct {
		Slot model.AvailabilitySlot `json:"slot"`
	}
	path := fmt.Sprintf("/availability/%d", slotID)
	if err := c.do(ctx, http.MethodPatch, path, input, &resp); err != nil {
		return nil, fmt.Errorf("update availability slot: %w", err)
	}

	return &resp.Slot, nil
}

// DeleteAvailabilitySlot removes an availability slot
func (c *Client) DeleteAvailabilitySlot(ctx context.Context, slotID int64) error {
	path := fmt.Sprintf("/availability/%d", slotID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete availability slot: %w", err)
	}

	return nil
}
