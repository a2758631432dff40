package service

import (
	"errors"

	"github.com/talemy/client-go/internal/api"
	"github.com/talemy/client-go/internal/auth"
)

// Validation and precondition errors, rejected before any network call
var (
	ErrInvalidDayOfWeek  = errors.New("day of week must be between 0 and 6")
	ErrInvalidTimeFormat = errors.New("time must be formatted as HH:MM:SS")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrEmptyMessage      = errors.New("message content is empty")
	ErrRequestNotPending = errors.New("contact request is not pending")
	ErrInvalidLesson     = errors.New("lesson proposal is invalid")
)

// UserMessage maps an error to the message shown to the user
func UserMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "❌ Email ou mot de passe incorrect"
	case errors.Is(err, auth.ErrRateLimited):
		return "❌ Trop de tentatives, réessayez plus tard"
	case errors.Is(err, ErrInvalidDayOfWeek), errors.Is(err, ErrInvalidTimeFormat), errors.Is(err, ErrInvalidTimeRange):
		return "❌ Créneau invalide"
	case errors.Is(err, ErrEmptyMessage):
		return "❌ Le message ne peut pas être vide"
	case errors.Is(err, ErrRequestNotPending):
		return "❌ Cette demande n'est plus en attente"
	case errors.Is(err, ErrInvalidLesson):
		return "❌ Proposition de cours invalide"
	default:
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return "❌ Une erreur est survenue, veuillez réessayer"
		}
		return "❌ Une erreur est survenue"
	}
}
