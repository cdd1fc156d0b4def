package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
)

// EnrollmentLedger is the mutation and occupancy surface of the enrollment
// store. InsertIfAbsent must be atomic with respect to the uniqueness of
// (studentID, courseID) and return apperrors.ErrAlreadyEnrolled on conflict;
// that atomicity, not any occupancy count read beforehand, is what prevents
// double-enrollment under concurrent requests.
type EnrollmentLedger interface {
	InsertIfAbsent(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	CountActive(ctx context.Context, courseID int64) (int, error)
	Delete(ctx context.Context, studentID, courseID int64) error
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
}

// BulkOutcome is the per-candidate outcome of a bulk enrollment.
type BulkOutcome string

const (
	OutcomeSuccess           BulkOutcome = "success"
	OutcomeCapacity          BulkOutcome = BulkOutcome(DenyCapacity)
	OutcomeAlreadyEnrolled   BulkOutcome = BulkOutcome(DenyAlreadyEnrolled)
	OutcomePrerequisiteUnmet BulkOutcome = BulkOutcome(DenyPrerequisiteUnmet)
)

// BulkEnrollEntry pairs a candidate student with their outcome.
type BulkEnrollEntry struct {
	StudentID int64
	Outcome   BulkOutcome
}

// BulkEnrollResult is the full ordered result of a bulk enrollment: one entry
// per input student, input order preserved, plus the seats remaining after
// the batch.
type BulkEnrollResult struct {
	Results   []BulkEnrollEntry
	SeatsLeft int
}

// EnrollmentService coordinates seat allocation for single and bulk
// enrollment requests. It takes its storage collaborators as interfaces so
// the decision logic carries no connection handling of its own.
//
// Capacity enforcement is best-effort: the occupancy read is a fast path
// that is not re-validated atomically with the insert, so two requests
// racing for the last seat can both be admitted. The uniqueness constraint
// behind InsertIfAbsent is the only hard guarantee, and it guards pairs,
// not seats. Callers that need strict capacity must serialize enrollment
// per course at the storage layer.
type EnrollmentService struct {
	catalog     CourseCatalog
	enrollments EnrollmentLedger
	evaluator   *EligibilityEvaluator
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(catalog CourseCatalog, grades GradeLedger, enrollments EnrollmentLedger, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		catalog:     catalog,
		enrollments: enrollments,
		evaluator:   NewEligibilityEvaluator(catalog, grades),
		logger:      logger,
	}
}

// Evaluate exposes the eligibility check without side effects.
func (s *EnrollmentService) Evaluate(ctx context.Context, studentID, courseID int64) (Verdict, error) {
	return s.evaluator.Evaluate(ctx, studentID, courseID)
}

// Enroll admits a single student into a course or returns the deny reason as
// a sentinel error: apperrors.ErrCourseNotFound, ErrCourseFull,
// ErrPrerequisiteUnmet or ErrAlreadyEnrolled.
//
// Capacity is checked before prerequisites to fail fast on the more common
// rejection. The occupancy read is advisory; the authoritative duplicate
// guard is the atomic insert at the end.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	course, err := s.catalog.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error looking up course: %w", err)
	}

	occupancy, err := s.enrollments.CountActive(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting enrollments: %w", err)
	}
	if occupancy >= course.Capacity {
		return nil, apperrors.ErrCourseFull
	}

	verdict, err := s.evaluator.checkPrerequisites(ctx, studentID, course.PrerequisiteIDs)
	if err != nil {
		return nil, err
	}
	if !verdict.Admit {
		return nil, apperrors.ErrPrerequisiteUnmet
	}

	enrollment, err := s.enrollments.InsertIfAbsent(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("error inserting enrollment: %w", err)
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("courseID", courseID).
		Int("occupancy", occupancy+1).
		Msg("Student enrolled")

	return enrollment, nil
}

// BulkEnroll processes an ordered candidate list against the remaining seats
// of a course. Seats are consumed strictly in input order from a counter
// computed once at batch start, so earlier candidates have priority for the
// last seats. Every input student gets exactly one outcome; the list is
// never reordered and never short-circuited.
//
// Returns apperrors.ErrCourseNotFound (and no per-student results) when the
// course does not exist. A non-nil error otherwise means a storage fault
// mid-batch.
func (s *EnrollmentService) BulkEnroll(ctx context.Context, courseID int64, studentIDs []int64) (*BulkEnrollResult, error) {
	course, err := s.catalog.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error looking up course: %w", err)
	}

	occupancy, err := s.enrollments.CountActive(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting enrollments: %w", err)
	}

	seatsLeft := course.Capacity - occupancy
	if seatsLeft < 0 {
		seatsLeft = 0
	}

	result := &BulkEnrollResult{
		Results: make([]BulkEnrollEntry, 0, len(studentIDs)),
	}

	for _, studentID := range studentIDs {
		outcome, err := s.placeCandidate(ctx, studentID, course, &seatsLeft)
		if err != nil {
			return nil, err
		}
		result.Results = append(result.Results, BulkEnrollEntry{StudentID: studentID, Outcome: outcome})
	}

	result.SeatsLeft = seatsLeft

	s.logger.Info().
		Int64("courseID", courseID).
		Int("candidates", len(studentIDs)).
		Int("seatsLeft", seatsLeft).
		Msg("Bulk enrollment processed")

	return result, nil
}

// placeCandidate runs the per-candidate step of a bulk enrollment and
// decrements *seatsLeft on success.
func (s *EnrollmentService) placeCandidate(ctx context.Context, studentID int64, course *models.Course, seatsLeft *int) (BulkOutcome, error) {
	if *seatsLeft <= 0 {
		return OutcomeCapacity, nil
	}

	enrolled, err := s.enrollments.Exists(ctx, studentID, course.ID)
	if err != nil {
		return "", fmt.Errorf("error checking enrollment: %w", err)
	}
	if enrolled {
		return OutcomeAlreadyEnrolled, nil
	}

	verdict, err := s.evaluator.checkPrerequisites(ctx, studentID, course.PrerequisiteIDs)
	if err != nil {
		return "", err
	}
	if !verdict.Admit {
		return OutcomePrerequisiteUnmet, nil
	}

	if _, err := s.enrollments.InsertIfAbsent(ctx, studentID, course.ID); err != nil {
		// A concurrent request may have enrolled the student after the
		// Exists check; the constraint backstop turns that into a clean
		// already_enrolled outcome.
		if errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			return OutcomeAlreadyEnrolled, nil
		}
		return "", fmt.Errorf("error inserting enrollment: %w", err)
	}

	*seatsLeft--
	return OutcomeSuccess, nil
}

// Unenroll removes a student's active enrollment from a course.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if err := s.enrollments.Delete(ctx, studentID, courseID); err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return apperrors.ErrEnrollmentNotFound
		}
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("courseID", courseID).
		Msg("Student unenrolled")

	return nil
}

// GetRoster retrieves the roster of a course.
func (s *EnrollmentService) GetRoster(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	if _, err := s.catalog.GetCourse(ctx, courseID); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error looking up course: %w", err)
	}

	return s.enrollments.ListByCourse(ctx, courseID)
}

// GetStudentEnrollments retrieves a student's active enrollments.
func (s *EnrollmentService) GetStudentEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return s.enrollments.ListByStudent(ctx, studentID)
}
