package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
)

// DenyReason explains why an eligibility check or enrollment attempt was
// denied. These are expected business outcomes, not faults.
type DenyReason string

const (
	DenyCourseNotFound    DenyReason = "course_not_found"
	DenyCapacity          DenyReason = "capacity"
	DenyAlreadyEnrolled   DenyReason = "already_enrolled"
	DenyPrerequisiteUnmet DenyReason = "prerequisite_unmet"
)

// Verdict is the outcome of an eligibility check. Reason is set only when
// Admit is false.
type Verdict struct {
	Admit  bool
	Reason DenyReason
}

func admit() Verdict {
	return Verdict{Admit: true}
}

func deny(reason DenyReason) Verdict {
	return Verdict{Reason: reason}
}

// CourseCatalog is the catalog lookup the enrollment engine depends on.
// Implementations return apperrors.ErrCourseNotFound for unknown courses and
// populate PrerequisiteIDs on the returned course.
type CourseCatalog interface {
	GetCourse(ctx context.Context, courseID int64) (*models.Course, error)
}

// GradeLedger supplies latest-grade lookups. Implementations return
// apperrors.ErrGradeNotFound when no grade record exists for the pair.
type GradeLedger interface {
	GetLatestGrade(ctx context.Context, studentID, courseID int64) (models.Grade, error)
}

// EligibilityEvaluator decides whether a student satisfies the prerequisites
// of a course. It never writes and never consults occupancy; capacity and
// duplicate checks belong to the coordinator because they depend on ledger
// state that mutates concurrently.
type EligibilityEvaluator struct {
	catalog CourseCatalog
	grades  GradeLedger
}

// NewEligibilityEvaluator creates a new eligibility evaluator
func NewEligibilityEvaluator(catalog CourseCatalog, grades GradeLedger) *EligibilityEvaluator {
	return &EligibilityEvaluator{
		catalog: catalog,
		grades:  grades,
	}
}

// Evaluate checks a student's eligibility for a course. A non-nil error means
// a storage fault; business denials come back in the verdict.
func (e *EligibilityEvaluator) Evaluate(ctx context.Context, studentID, courseID int64) (Verdict, error) {
	course, err := e.catalog.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return deny(DenyCourseNotFound), nil
		}
		return Verdict{}, fmt.Errorf("error looking up course: %w", err)
	}

	return e.checkPrerequisites(ctx, studentID, course.PrerequisiteIDs)
}

// checkPrerequisites verifies that the student holds a passing latest grade
// for every direct prerequisite. All-or-nothing: one unmet prerequisite
// denies the whole check. A missing grade record counts as unmet; being
// merely enrolled in the prerequisite is not enough.
func (e *EligibilityEvaluator) checkPrerequisites(ctx context.Context, studentID int64, prerequisiteIDs []int64) (Verdict, error) {
	for _, prereqID := range prerequisiteIDs {
		grade, err := e.grades.GetLatestGrade(ctx, studentID, prereqID)
		if err != nil {
			if errors.Is(err, apperrors.ErrGradeNotFound) {
				return deny(DenyPrerequisiteUnmet), nil
			}
			return Verdict{}, fmt.Errorf("error looking up grade: %w", err)
		}

		if !grade.IsPassing() {
			return deny(DenyPrerequisiteUnmet), nil
		}
	}

	return admit(), nil
}
