package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/app/repositories"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
	"github.com/emirhan/coursehub/internal/pkg/validation"
)

// Common course errors
var (
	ErrCourseValidation = errors.New("course validation failed")
)

// CourseService handles course catalog operations
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	enrollmentRepo *repositories.EnrollmentRepository
	userRepo       *repositories.UserRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, enrollmentRepo *repositories.EnrollmentRepository, userRepo *repositories.UserRepository) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

// validateCourse validates course data before database operations
func (s *CourseService) validateCourse(course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", ErrCourseValidation)
	}

	if !validation.IsValidCourseCode(strings.TrimSpace(course.Code)) {
		return fmt.Errorf("%w: code must match %s", ErrCourseValidation, validation.CourseCodePattern)
	}

	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrCourseValidation)
	}

	if course.Credits < 0 {
		return fmt.Errorf("%w: credits cannot be negative", ErrCourseValidation)
	}

	if course.Capacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative", ErrCourseValidation)
	}

	for _, prereqID := range course.PrerequisiteIDs {
		if prereqID == course.ID && course.ID != 0 {
			return apperrors.ErrSelfPrerequisite
		}
	}

	return nil
}

// canManage reports whether the actor may mutate the course. Teachers manage
// only their own courses; admins manage any.
func canManage(actorID int64, actorRole models.RoleType, course *models.Course) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	return actorRole == models.RoleTeacher && course.TeacherID == actorID
}

// CreateCourse creates a new course owned by the given teacher
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}

	// Every prerequisite must point at an existing course
	for _, prereqID := range course.PrerequisiteIDs {
		if _, err := s.courseRepo.GetCourse(ctx, prereqID); err != nil {
			if errors.Is(err, apperrors.ErrCourseNotFound) {
				return fmt.Errorf("%w: prerequisite course %d not found", ErrCourseValidation, prereqID)
			}
			return fmt.Errorf("error checking prerequisite: %w", err)
		}
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrCourseCodeExists) {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetCourseByID retrieves a course with its current occupancy
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, int, error) {
	course, err := s.courseRepo.GetCourse(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, 0, apperrors.ErrCourseNotFound
		}
		return nil, 0, fmt.Errorf("error retrieving course: %w", err)
	}

	occupancy, err := s.enrollmentRepo.CountActive(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	return course, occupancy, nil
}

// ListCourses retrieves courses matching an optional text filter
func (s *CourseService) ListCourses(ctx context.Context, query string, offset uint64, limit int) ([]*models.Course, int64, error) {
	courses, total, err := s.courseRepo.List(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, total, nil
}

// UpdateCourse updates a course's name, credits and capacity. Teachers may
// only update their own courses.
func (s *CourseService) UpdateCourse(ctx context.Context, actorID int64, actorRole models.RoleType, courseID int64, name string, credits, capacity *int) (*models.Course, error) {
	course, err := s.courseRepo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	if !canManage(actorID, actorRole, course) {
		return nil, apperrors.ErrPermissionDenied
	}

	if name != "" {
		course.Name = name
	}
	if credits != nil {
		course.Credits = *credits
	}
	if capacity != nil {
		course.Capacity = *capacity
	}

	if err := s.validateCourse(course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return course, nil
}

// DeleteCourse deletes a course. Teachers may only delete their own courses.
func (s *CourseService) DeleteCourse(ctx context.Context, actorID int64, actorRole models.RoleType, courseID int64) error {
	course, err := s.courseRepo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error retrieving course: %w", err)
	}

	if !canManage(actorID, actorRole, course) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	return nil
}

// AddPrerequisite adds a direct prerequisite edge to a course. Self-loops
// are rejected; longer cycles are not detected since eligibility evaluation
// only ever follows direct edges.
func (s *CourseService) AddPrerequisite(ctx context.Context, actorID int64, actorRole models.RoleType, courseID, prerequisiteID int64) error {
	if courseID == prerequisiteID {
		return apperrors.ErrSelfPrerequisite
	}

	course, err := s.courseRepo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error retrieving course: %w", err)
	}

	if !canManage(actorID, actorRole, course) {
		return apperrors.ErrPermissionDenied
	}

	if _, err := s.courseRepo.GetCourse(ctx, prerequisiteID); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error retrieving prerequisite course: %w", err)
	}

	if err := s.courseRepo.AddPrerequisite(ctx, courseID, prerequisiteID); err != nil {
		return fmt.Errorf("error adding prerequisite: %w", err)
	}

	return nil
}

// RemovePrerequisite removes a direct prerequisite edge from a course
func (s *CourseService) RemovePrerequisite(ctx context.Context, actorID int64, actorRole models.RoleType, courseID, prerequisiteID int64) error {
	course, err := s.courseRepo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error retrieving course: %w", err)
	}

	if !canManage(actorID, actorRole, course) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.courseRepo.RemovePrerequisite(ctx, courseID, prerequisiteID); err != nil {
		if errors.Is(err, apperrors.ErrPrerequisiteNotFound) {
			return apperrors.ErrPrerequisiteNotFound
		}
		return fmt.Errorf("error removing prerequisite: %w", err)
	}

	return nil
}
