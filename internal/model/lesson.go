package model

import "time"

type LessonStatus string

const (
	LessonStatusPending   LessonStatus = "PENDING"   // Waiting for the party's confirmation
	LessonStatusConfirmed LessonStatus = "CONFIRMED" // Confirmed by the party
	LessonStatusCancelled LessonStatus = "CANCELLED" // Cancelled by the party
)

// Lesson is a scheduled session between a teacher and a student.
// Each party keeps its own status; the two fields are written
// independently and no invariant forces them to match.
type Lesson struct {
	ID               int64        `json:"id"`
	TeacherUserID    int64        `json:"teacherUserId"`
	StudentUserID    int64        `json:"studentUserId"`
	SubjectID        int64        `json:"subjectId"`
	StartAt          time.Time    `json:"startAt"`
	DurationMin      int          `json:"durationMin"`
	StatusForStudent LessonStatus `json:"statusForStudent"`
	StatusForTeacher LessonStatus `json:"statusForTeacher"`

	// Expanded references returned by the API
	Teacher *UserRef `json:"teacher,omitempty"`
	Student *UserRef `json:"student,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}

// UserRef is the short user representation embedded in API responses
type UserRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email,omitempty"`
}

// IsCancelled reports whether either party cancelled the lesson.
// A cancellation by one party is terminal for the whole lesson.
func (l *Lesson) IsCancelled() bool {
	return l.StatusForStudent == LessonStatusCancelled || l.StatusForTeacher == LessonStatusCancelled
}

// IsConfirmed reports whether both parties confirmed the lesson
func (l *Lesson) IsConfirmed() bool {
	return l.StatusForStudent == LessonStatusConfirmed && l.StatusForTeacher == LessonStatusConfirmed
}

// EndAt returns the instant at which the lesson ends
func (l *Lesson) EndAt() time.Time {
	return l.StartAt.Add(time.Duration(l.DurationMin) * time.Minute)
}
