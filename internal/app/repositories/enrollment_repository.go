package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
)

// EnrollmentRepository handles database operations for the enrollment ledger.
// The unique constraint on (student_id, course_id) is the authoritative guard
// against double-enrollment; callers must treat any occupancy count they read
// beforehand as advisory.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// InsertIfAbsent atomically inserts an enrollment for (studentID, courseID).
// Returns apperrors.ErrAlreadyEnrolled when the pair already exists. The
// ON CONFLICT clause makes the existence check and the insert a single
// statement, which closes the check-then-insert race between concurrent
// requests for the same pair.
func (r *EnrollmentRepository) InsertIfAbsent(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	query := `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT enrollments_student_course_key DO NOTHING
		RETURNING id, created_at
	`

	enrollment := &models.Enrollment{StudentID: studentID, CourseID: courseID}
	err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict path: DO NOTHING yields no row
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("error inserting enrollment: %w", err)
	}

	return enrollment, nil
}

// Exists checks whether an active enrollment exists for (studentID, courseID)
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	return exists, nil
}

// CountActive returns the current occupancy of a course
func (r *EnrollmentRepository) CountActive(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

// Delete removes the active enrollment for (studentID, courseID)
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, courseID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM enrollments WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// ListByCourse retrieves the roster of a course, student info included
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.created_at,
		       u.id, u.email, u.first_name, u.last_name, u.role_type, u.is_active
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		WHERE e.course_id = $1
		ORDER BY e.created_at
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course roster: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var student models.User
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.CreatedAt,
			&student.ID,
			&student.Email,
			&student.FirstName,
			&student.LastName,
			&student.RoleType,
			&student.IsActive,
		); err != nil {
			return nil, err
		}
		enrollment.Student = &student
		enrollments = append(enrollments, &enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListByStudent retrieves a student's active enrollments, course info included
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.created_at,
		       c.id, c.code, c.name, c.credits, c.capacity, c.teacher_id, c.created_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var course models.Course
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.CreatedAt,
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
		enrollment.Course = &course
		enrollments = append(enrollments, &enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}
