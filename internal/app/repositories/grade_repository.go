package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
)

// GradeRepository handles database operations for the append-only grade
// ledger. Records are never updated or deleted; a retake adds a new record
// and "latest" resolves by assignment timestamp with record ID as the
// deterministic tie-break.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
	}
}

// Create appends a new grade record and sets its generated ID
func (r *GradeRepository) Create(ctx context.Context, record *models.GradeRecord) error {
	query := `
		INSERT INTO grades (student_id, course_id, grade, graded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, assigned_at
	`

	err := r.db.QueryRow(ctx, query,
		record.StudentID, record.CourseID, record.Grade, record.GradedBy,
	).Scan(&record.ID, &record.AssignedAt)
	if err != nil {
		return fmt.Errorf("error creating grade record: %w", err)
	}

	return nil
}

// GetLatestGrade returns the latest grade for (studentID, courseID).
// Latest means maximum assigned_at, ties broken by highest record id; the
// selection runs through models.LatestGradeRecord so retake resolution has a
// single definition. Returns apperrors.ErrGradeNotFound when no record exists.
func (r *GradeRepository) GetLatestGrade(ctx context.Context, studentID, courseID int64) (models.Grade, error) {
	query := `
		SELECT id, grade, assigned_at
		FROM grades
		WHERE student_id = $1 AND course_id = $2
	`

	rows, err := r.db.Query(ctx, query, studentID, courseID)
	if err != nil {
		return "", fmt.Errorf("error retrieving grade history: %w", err)
	}
	defer rows.Close()

	var records []*models.GradeRecord
	for rows.Next() {
		var record models.GradeRecord
		if err := rows.Scan(&record.ID, &record.Grade, &record.AssignedAt); err != nil {
			return "", err
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	latest := models.LatestGradeRecord(records)
	if latest == nil {
		return "", apperrors.ErrGradeNotFound
	}

	return latest.Grade, nil
}

// ListByStudent retrieves a student's full grade history, course info included
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.GradeRecord, error) {
	query := `
		SELECT g.id, g.student_id, g.course_id, g.grade, g.graded_by, g.assigned_at,
		       c.id, c.code, c.name, c.credits, c.capacity, c.teacher_id, c.created_at
		FROM grades g
		JOIN courses c ON c.id = g.course_id
		WHERE g.student_id = $1
		ORDER BY g.assigned_at DESC, g.id DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	var records []*models.GradeRecord
	for rows.Next() {
		var record models.GradeRecord
		var course models.Course
		if err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.CourseID,
			&record.Grade,
			&record.GradedBy,
			&record.AssignedAt,
			&course.ID,
			&course.Code,
			&course.Name,
			&course.Credits,
			&course.Capacity,
			&course.TeacherID,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		record.Course = &course
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ListLatestByStudent retrieves the latest grade record per course for a
// student, course info included. Used to build transcripts.
func (r *GradeRepository) ListLatestByStudent(ctx context.Context, studentID int64) ([]*models.GradeRecord, error) {
	query := `
		SELECT DISTINCT ON (g.course_id)
		       g.id, g.student_id, g.course_id, g.grade, g.graded_by, g.assigned_at,
		       c.id, c.code, c.name, c.credits, c.capacity, c.teacher_id, c.created_at
		FROM grades g
		JOIN courses c ON c.id = g.course_id
		WHERE g.student_id = $1
		ORDER BY g.course_id, g.assigned_at DESC, g.id DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing latest grades: %w", err)
	}
	defer rows.Close()

	var records []*models.GradeRecord
	for rows.Next() {
		var record models.GradeRecord
		var course models.Course
		if err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.CourseID,
			&record.Grade,
			&record.GradedBy,
			&record.AssignedAt,
			&course.ID,
			&course.Code,
			&course.Name,
			&course.Credits,
			&course.Capacity,
			&course.TeacherID,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		record.Course = &course
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
