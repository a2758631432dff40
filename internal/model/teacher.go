package model

import "time"

type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeacherProfile is the public teaching profile attached to a user
type TeacherProfile struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Bio          string    `json:"bio"`
	City         string    `json:"city"`
	HourlyRate   float64   `json:"hourlyRate"`
	RatingAvg    string    `json:"ratingAvg"`
	ReviewsCount int       `json:"reviewsCount"`
	User         UserRef   `json:"user"`
	Subjects     []Subject `json:"subjects"`
}

type Review struct {
	ID            int64     `json:"id"`
	TeacherUserID int64     `json:"teacherUserId"`
	StudentUserID int64     `json:"studentUserId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
	Student       *UserRef  `json:"student,omitempty"`
}
