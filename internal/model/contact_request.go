package model

type ContactRequestStatus string

const (
	ContactRequestPending  ContactRequestStatus = "PENDING"
	ContactRequestAccepted ContactRequestStatus = "ACCEPTED"
	ContactRequestRejected ContactRequestStatus = "REJECTED"
)

// ContactRequest is a student's request to start a conversation with a
// teacher. Created by the student, accepted or rejected by the teacher,
// and withdrawable by the student while still pending.
type ContactRequest struct {
	ID            int64                `json:"id"`
	StudentUserID int64                `json:"studentUserId"`
	TeacherUserID int64                `json:"teacherUserId"`
	Message       string               `json:"message"`
	Status        ContactRequestStatus `json:"status"`

	Student *UserRef `json:"student,omitempty"`
	Teacher *UserRef `json:"teacher,omitempty"`
}

// IsPending checks if the request is still awaiting the teacher's decision
func (r *ContactRequest) IsPending() bool {
	return r.Status == ContactRequestPending
}
