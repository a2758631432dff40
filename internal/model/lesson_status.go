package model

type LessonDisplayStatus string

const (
	DisplayConfirmed                  LessonDisplayStatus = "CONFIRMED"                    // Both parties confirmed
	DisplayWaitingYourConfirmation    LessonDisplayStatus = "WAITING_YOUR_CONFIRMATION"    // The other party confirmed, the viewer did not
	DisplayWaitingTeacherConfirmation LessonDisplayStatus = "WAITING_TEACHER_CONFIRMATION" // The student confirmed, the teacher did not
	DisplayWaitingStudentConfirmation LessonDisplayStatus = "WAITING_STUDENT_CONFIRMATION" // The teacher confirmed, the student did not
	DisplayCancelled                  LessonDisplayStatus = "CANCELLED"                    // Either party cancelled
	DisplayPending                    LessonDisplayStatus = "PENDING"                      // Both parties still pending
)

// BadgeVariant is the visual severity tag attached to a display status
type BadgeVariant string

const (
	VariantDefault     BadgeVariant = "default"
	VariantSecondary   BadgeVariant = "secondary"
	VariantDestructive BadgeVariant = "destructive"
	VariantOutline     BadgeVariant = "outline"
)

// LessonStatusInfo is the reconciled, display-ready view of the two
// per-party statuses, including the actions the viewer may take.
type LessonStatusInfo struct {
	Status     LessonDisplayStatus
	Label      string
	Variant    BadgeVariant
	CanConfirm bool
	CanCancel  bool
}

// ResolveLessonStatus reconciles the two independent per-party statuses
// into a single display status for the given viewer role.
//
// The branch order matters: a cancellation by either party wins over
// everything, a double confirmation wins over the waiting states, and
// any combination not matched explicitly falls back to PENDING. The
// function is total over all status combinations and never fails.
func ResolveLessonStatus(statusForStudent, statusForTeacher LessonStatus, viewerIsStudent bool) LessonStatusInfo {
	// Either party cancelled: terminal, no actions left
	if statusForStudent == LessonStatusCancelled || statusForTeacher == LessonStatusCancelled {
		return LessonStatusInfo{
			Status:     DisplayCancelled,
			Label:      "Annulé",
			Variant:    VariantDestructive,
			CanConfirm: false,
			CanCancel:  false,
		}
	}

	// Both parties confirmed
	if statusForStudent == LessonStatusConfirmed && statusForTeacher == LessonStatusConfirmed {
		return LessonStatusInfo{
			Status:     DisplayConfirmed,
			Label:      "Confirmé",
			Variant:    VariantDefault,
			CanConfirm: false,
			CanCancel:  true,
		}
	}

	if viewerIsStudent {
		// The teacher confirmed, the student has not yet
		if statusForTeacher == LessonStatusConfirmed && statusForStudent == LessonStatusPending {
			return LessonStatusInfo{
				Status:     DisplayWaitingYourConfirmation,
				Label:      "En attente de votre confirmation",
				Variant:    VariantSecondary,
				CanConfirm: true,
				CanCancel:  true,
			}
		}

		// The student confirmed, the teacher has not yet
		if statusForStudent == LessonStatusConfirmed && statusForTeacher == LessonStatusPending {
			return LessonStatusInfo{
				Status:     DisplayWaitingTeacherConfirmation,
				Label:      "En attente de la confirmation du professeur",
				Variant:    VariantOutline,
				CanConfirm: false,
				CanCancel:  true,
			}
		}
	} else {
		// The student confirmed, the teacher has not yet
		if statusForStudent == LessonStatusConfirmed && statusForTeacher == LessonStatusPending {
			return LessonStatusInfo{
				Status:     DisplayWaitingYourConfirmation,
				Label:      "En attente de votre confirmation",
				Variant:    VariantSecondary,
				CanConfirm: true,
				CanCancel:  true,
			}
		}

		// The teacher confirmed, the student has not yet
		if statusForTeacher == LessonStatusConfirmed && statusForStudent == LessonStatusPending {
			return LessonStatusInfo{
				Status:     DisplayWaitingStudentConfirmation,
				Label:      "En attente de la confirmation de l'élève",
				Variant:    VariantOutline,
				CanConfirm: false,
				CanCancel:  true,
			}
		}
	}

	// Both pending, or any unexpected combination: conservative default
	return LessonStatusInfo{
		Status:     DisplayPending,
		Label:      "En attente",
		Variant:    VariantSecondary,
		CanConfirm: true,
		CanCancel:  true,
	}
}

// DisplayStatus resolves the lesson status as seen by the given viewer
func (l *Lesson) DisplayStatus(viewer *User) LessonStatusInfo {
	viewerIsStudent := viewer != nil && viewer.ID == l.StudentUserID
	return ResolveLessonStatus(l.StatusForStudent, l.StatusForTeacher, viewerIsStudent)
}
