package models

import "time"

// Grade is a letter grade on the ordered scale used by the grading system.
type Grade string

// Letter grades, highest to lowest.
const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeD      Grade = "D"
	GradeF      Grade = "F"
)

// gradePoints maps each letter grade to its 4.0-scale point value.
var gradePoints = map[Grade]float64{
	GradeAPlus:  4.0,
	GradeA:      4.0,
	GradeAMinus: 3.7,
	GradeBPlus:  3.3,
	GradeB:      3.0,
	GradeBMinus: 2.7,
	GradeCPlus:  2.3,
	GradeC:      2.0,
	GradeCMinus: 1.7,
	GradeD:      1.0,
	GradeF:      0.0,
}

// IsValid reports whether g is a letter grade on the scale.
func (g Grade) IsValid() bool {
	_, ok := gradePoints[g]
	return ok
}

// IsPassing reports whether g counts as a passing grade. Everything from A+
// down to D passes; F does not.
func (g Grade) IsPassing() bool {
	return g.IsValid() && g != GradeF
}

// Points returns the 4.0-scale point value of the grade. Unknown grades map
// to zero.
func (g Grade) Points() float64 {
	return gradePoints[g]
}

// GradeRecord defines a grade assignment based on the 'grades' table.
// Records are append-only; a student retaking a course accumulates multiple
// records and the one with the latest assignment timestamp wins.
type GradeRecord struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	StudentID  int64     `json:"studentId" db:"student_id" example:"7"`
	CourseID   int64     `json:"courseId" db:"course_id" example:"3"`
	Grade      Grade     `json:"grade" db:"grade" example:"B+"`
	GradedBy   int64     `json:"gradedBy" db:"graded_by" example:"2"`
	AssignedAt time.Time `json:"assignedAt" db:"assigned_at" example:"2025-06-15T10:00:00Z"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// LatestGradeRecord returns the record with the newest assignment timestamp,
// breaking equal timestamps by highest record id. Insertion order of the
// slice does not matter. Returns nil for an empty history.
func LatestGradeRecord(records []*GradeRecord) *GradeRecord {
	var latest *GradeRecord
	for _, record := range records {
		if latest == nil ||
			record.AssignedAt.After(latest.AssignedAt) ||
			(record.AssignedAt.Equal(latest.AssignedAt) && record.ID > latest.ID) {
			latest = record
		}
	}
	return latest
}
