package models

import "time"

// Enrollment captures an active (student, course) registration based on the
// 'enrollments' table. At most one active enrollment exists per pair; the
// unique constraint on (student_id, course_id) is the authoritative guard.
type Enrollment struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	StudentID int64     `json:"studentId" db:"student_id" example:"7"`
	CourseID  int64     `json:"courseId" db:"course_id" example:"3"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-09-01T09:30:00Z"`

	// Relations (populated when needed)
	Student *User   `json:"student,omitempty"`
	Course  *Course `json:"course,omitempty"`
}
