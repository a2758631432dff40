package model

import "time"

// AvailabilitySlot is a weekly recurring time range during which a
// teacher accepts lessons. Times are "HH:MM:SS" strings, DayOfWeek is
// 0 (Sunday) through 6 (Saturday).
type AvailabilitySlot struct {
	ID            int64     `json:"id"`
	TeacherUserID int64     `json:"teacherUserId"`
	DayOfWeek     int       `json:"dayOfWeek"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
