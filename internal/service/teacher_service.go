package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/api"
	"github.com/talemy/client-go/internal/model"
)

const timeOfDayLayout = "15:04:05"

// TeacherService manages the caller's teaching surface: profile,
// taught subjects and weekly availability. Slot input is validated
// before any network call.
type TeacherService struct {
	api      *api.Client
	validate *validator.Validate
	logger   *zap.Logger
}

func NewTeacherService(apiClient *api.Client, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		api:      apiClient,
		validate: validator.New(),
		logger:   logger,
	}
}

// MyProfile fetches the caller's teacher profile
func (s *TeacherService) MyProfile(ctx context.Context) (*model.TeacherProfile, error) {
	return s.api.MyTeacherProfile(ctx)
}

// UpdateProfile patches the caller's teacher profile
func (s *TeacherService) UpdateProfile(ctx context.Context, update api.TeacherProfileUpdate) (*model.TeacherProfile, error) {
	profile, err := s.api.UpdateMyTeacherProfile(ctx, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Teacher profile updated", zap.Int64("user_id", profile.UserID))
	return profile, nil
}

// UpdateSubjects replaces the set of subjects the caller teaches
func (s *TeacherService) UpdateSubjects(ctx context.Context, subjectIDs []int64) (*model.TeacherProfile, error) {
	return s.api.UpdateMyTeacherSubjects(ctx, subjectIDs)
}

// Subjects lists all subjects available on the platform
func (s *TeacherService) Subjects(ctx context.Context) ([]model.Subject, error) {
	return s.api.Subjects(ctx)
}

// MyAvailability lists the caller's weekly availability slots
func (s *TeacherService) MyAvailability(ctx context.Context) ([]model.AvailabilitySlot, error) {
	return s.api.MyAvailability(ctx)
}

// AddSlot validates and creates a weekly availability slot
func (s *TeacherService) AddSlot(ctx context.Context, input api.SlotInput) (*model.AvailabilitySlot, error) {
	if err := s.validateSlot(input); err != nil {
		return nil, err
	}

	slot, err := s.api.CreateAvailabilitySlot(ctx, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Availability slot added",
		zap.Int64("slot_id", slot.ID),
		zap.Int("day_of_week", slot.DayOfWeek))

	return slot, nil
}

// UpdateSlot validates and updates an availability slot
func (s *TeacherService) UpdateSlot(ctx context.Context, slotID int64, input api.SlotInput) (*model.AvailabilitySlot, error) {
	if err := s.validateSlot(input); err != nil {
		return nil, err
	}

	return s.api.UpdateAvailabilitySlot(ctx, slotID, input)
}

// RemoveSlot deletes an availability slot
func (s *TeacherService) RemoveSlot(ctx context.Context, slotID int64) error {
	return s.api.DeleteAvailabilitySlot(ctx, slotID)
}

// slotRules mirrors api.SlotInput with the validation constraints the
// API enforces, so malformed input never leaves the client.
type slotRules struct {
	DayOfWeek int    `validate:"min=0,max=6"`
	StartTime string `validate:"required,datetime=15:04:05"`
	EndTime   string `validate:"required,datetime=15:04:05"`
}

func (s *TeacherService) validateSlot(input api.SlotInput) error {
	rules := slotRules(input)

	if err := s.validate.Struct(rules); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			if fieldErrors[0].Field() == "DayOfWeek" {
				return ErrInvalidDayOfWeek
			}
			return ErrInvalidTimeFormat
		}
		return err
	}

	start, _ := time.Parse(timeOfDayLayout, input.StartTime)
	end, _ := time.Parse(timeOfDayLayout, input.EndTime)
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}

	return nil
}
