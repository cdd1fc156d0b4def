package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
	"github.com/emirhan/coursehub/internal/pkg/dberrors"
)

// CourseRepository handles database operations for the course catalog
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create creates a new course together with its prerequisite edges. The
// insert and the edges go in one transaction so a half-created course never
// becomes visible.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO courses (code, name, credits, capacity, teacher_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query,
		course.Code, course.Name, course.Credits, course.Capacity, course.TeacherID,
	).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	for _, prereqID := range course.PrerequisiteIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO course_prerequisites (course_id, prerequisite_id) VALUES ($1, $2)`,
			course.ID, prereqID)
		if err != nil {
			return fmt.Errorf("error creating prerequisite edge: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing course creation: %w", err)
	}

	return nil
}

// GetCourse retrieves a course by ID with its direct prerequisite IDs loaded
func (r *CourseRepository) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, code, name, credits, capacity, teacher_id, created_at
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Code,
		&course.Name,
		&course.Credits,
		&course.Capacity,
		&course.TeacherID,
		&course.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	course.PrerequisiteIDs, err = r.GetPrerequisiteIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	return &course, nil
}

// GetPrerequisiteIDs retrieves the direct prerequisite course IDs for a course
func (r *CourseRepository) GetPrerequisiteIDs(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT prerequisite_id FROM course_prerequisites WHERE course_id = $1 ORDER BY prerequisite_id`,
		courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving prerequisites: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// List retrieves courses matching an optional text filter with pagination,
// plus the total match count.
func (r *CourseRepository) List(ctx context.Context, query string, offset uint64, limit int) ([]*models.Course, int64, error) {
	var conditions []string
	var args []interface{}

	if query != "" {
		args = append(args, "%"+strings.ToLower(query)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(code) LIKE %[1]s OR LOWER(name) LIKE %[1]s)", placeholder))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`
		SELECT id, code, name, credits, capacity, teacher_id, created_at
		FROM courses%s
		ORDER BY code LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Name,
			&course.Credits,
			&course.Capacity,
			&course.TeacherID,
			&course.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		courses = append(courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// Update updates a course's name, credits and capacity
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, credits = $2, capacity = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, course.Name, course.Credits, course.Capacity, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// AddPrerequisite adds a direct prerequisite edge to a course
func (r *CourseRepository) AddPrerequisite(ctx context.Context, courseID, prerequisiteID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO course_prerequisites (course_id, prerequisite_id) VALUES ($1, $2)`,
		courseID, prerequisiteID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			// Edge already present, nothing to do
			return nil
		}
		return fmt.Errorf("error adding prerequisite: %w", err)
	}
	return nil
}

// RemovePrerequisite removes a direct prerequisite edge from a course
func (r *CourseRepository) RemovePrerequisite(ctx context.Context, courseID, prerequisiteID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM course_prerequisites WHERE course_id = $1 AND prerequisite_id = $2`,
		courseID, prerequisiteID)
	if err != nil {
		return fmt.Errorf("error removing prerequisite: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPrerequisiteNotFound
	}

	return nil
}
