package models

import "time"

// Course represents a course in the catalog. Capacity is the enrollment
// limit; PrerequisiteIDs holds the direct prerequisite courses only.
type Course struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Code      string    `json:"code" db:"code" example:"CENG301"`
	Name      string    `json:"name" db:"name" example:"Algorithms"`
	Credits   int       `json:"credits" db:"credits" example:"6"`
	Capacity  int       `json:"capacity" db:"capacity" example:"40"`
	TeacherID int64     `json:"teacherId" db:"teacher_id" example:"2"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-09-01T08:00:00Z"`

	// PrerequisiteIDs lists the IDs of direct prerequisite courses
	// (populated when needed)
	PrerequisiteIDs []int64 `json:"prerequisiteIds,omitempty"`

	// Relations (populated when needed)
	Teacher *User `json:"teacher,omitempty"`
}
