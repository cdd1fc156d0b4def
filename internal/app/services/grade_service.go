package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/app/models/dto"
	"github.com/emirhan/coursehub/internal/app/repositories"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
)

// GradeService handles grade assignment and transcript operations
type GradeService struct {
	gradeRepo  *repositories.GradeRepository
	courseRepo *repositories.CourseRepository
	userRepo   *repositories.UserRepository
}

// NewGradeService creates a new grade service instance
func NewGradeService(gradeRepo *repositories.GradeRepository, courseRepo *repositories.CourseRepository, userRepo *repositories.UserRepository) *GradeService {
	return &GradeService{
		gradeRepo:  gradeRepo,
		courseRepo: courseRepo,
		userRepo:   userRepo,
	}
}

// AssignGrade appends a grade record for a student in a course. Only the
// owning teacher or an admin may grade; records are never overwritten, a
// retake simply appends a newer record.
func (s *GradeService) AssignGrade(ctx context.Context, actorID int64, actorRole models.RoleType, courseID, studentID int64, grade models.Grade) (*models.GradeRecord, error) {
	if !grade.IsValid() {
		return nil, apperrors.ErrInvalidGrade
	}

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

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if student.RoleType != models.RoleStudent {
		return nil, apperrors.NewBadRequestError("grades can only be assigned to students")
	}

	record := &models.GradeRecord{
		StudentID: studentID,
		CourseID:  courseID,
		Grade:     grade,
		GradedBy:  actorID,
	}

	if err := s.gradeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("error creating grade record: %w", err)
	}

	return record, nil
}

// GetStudentGrades retrieves a student's full grade history. Students may
// only read their own history; teachers and admins may read anyone's.
func (s *GradeService) GetStudentGrades(ctx context.Context, actorID int64, actorRole models.RoleType, studentID int64) ([]*models.GradeRecord, error) {
	if actorRole == models.RoleStudent && actorID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.userRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return s.gradeRepo.ListByStudent(ctx, studentID)
}

// GetTranscript builds a student's transcript from the latest grade per
// course and computes the credit-weighted GPA on a 4.0 scale. An F counts
// with zero points; courses with zero credits are listed but do not move
// the GPA.
func (s *GradeService) GetTranscript(ctx context.Context, actorID int64, actorRole models.RoleType, studentID int64) (*dto.TranscriptResponse, error) {
	if actorRole == models.RoleStudent && actorID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}

	if _, err := s.userRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	records, err := s.gradeRepo.ListLatestByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing latest grades: %w", err)
	}

	transcript := &dto.TranscriptResponse{
		StudentID: studentID,
		Entries:   make([]dto.TranscriptEntry, 0, len(records)),
	}

	var weightedPoints float64
	for _, record := range records {
		entry := dto.TranscriptEntry{
			CourseID: record.CourseID,
			Grade:    string(record.Grade),
			Points:   record.Grade.Points(),
		}
		if record.Course != nil {
			entry.CourseCode = record.Course.Code
			entry.CourseName = record.Course.Name
			entry.Credits = record.Course.Credits
		}
		transcript.Entries = append(transcript.Entries, entry)

		transcript.TotalCredits += entry.Credits
		weightedPoints += entry.Points * float64(entry.Credits)
	}

	if transcript.TotalCredits > 0 {
		gpa := weightedPoints / float64(transcript.TotalCredits)
		transcript.GPA = math.Round(gpa*100) / 100
	}

	return transcript, nil
}
