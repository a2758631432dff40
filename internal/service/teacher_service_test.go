package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/api"
)

func TestTeacherServiceSlotValidation(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{"slot": map[string]any{"id": 1, "dayOfWeek": 1}})
	}))
	defer server.Close()

	svc := NewTeacherService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name    string
		input   api.SlotInput
		wantErr error
	}{
		{
			name:    "day of week too large",
			input:   api.SlotInput{DayOfWeek: 7, StartTime: "09:00:00", EndTime: "10:00:00"},
			wantErr: ErrInvalidDayOfWeek,
		},
		{
			name:    "day of week negative",
			input:   api.SlotInput{DayOfWeek: -1, StartTime: "09:00:00", EndTime: "10:00:00"},
			wantErr: ErrInvalidDayOfWeek,
		},
		{
			name:    "malformed start time",
			input:   api.SlotInput{DayOfWeek: 1, StartTime: "9h00", EndTime: "10:00:00"},
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "missing end time",
			input:   api.SlotInput{DayOfWeek: 1, StartTime: "09:00:00"},
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "start equals end",
			input:   api.SlotInput{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "09:00:00"},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "start after end",
			input:   api.SlotInput{DayOfWeek: 1, StartTime: "11:00:00", EndTime: "10:00:00"},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddSlot(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Rejected inputs never left the client
	assert.Equal(t, int64(0), calls.Load())

	// A valid slot goes through
	slot, err := svc.AddSlot(ctx, api.SlotInput{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "10:00:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), slot.ID)
	assert.Equal(t, int64(1), calls.Load())
}

func TestTeacherServiceUserMessages(t *testing.T) {
	assert.Equal(t, "❌ Créneau invalide", UserMessage(ErrInvalidTimeRange))
	assert.Equal(t, "❌ Cette demande n'est plus en attente", UserMessage(ErrRequestNotPending))
}
