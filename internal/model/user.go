package model

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
)

type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
}

// IsStudent checks if the user holds the student role
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsTeacher checks if the user holds the teacher role
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// FullName returns the display name of the user
func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}
