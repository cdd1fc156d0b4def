package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/app/services"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
)

type stubCatalog struct {
	course *models.Course
}

func (s *stubCatalog) GetCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	if s.course != nil && s.course.ID == courseID {
		return s.course, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

type stubGrades struct{}

func (stubGrades) GetLatestGrade(ctx context.Context, studentID, courseID int64) (models.Grade, error) {
	return "", apperrors.ErrGradeNotFound
}

type stubLedger struct {
	rows   map[[2]int64]*models.Enrollment
	nextID int64
}

func newStubLedger() *stubLedger {
	return &stubLedger{rows: make(map[[2]int64]*models.Enrollment)}
}

func (s *stubLedger) InsertIfAbsent(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	key := [2]int64{studentID, courseID}
	if _, ok := s.rows[key]; ok {
		return nil, apperrors.ErrAlreadyEnrolled
	}
	s.nextID++
	enrollment := &models.Enrollment{ID: s.nextID, StudentID: studentID, CourseID: courseID}
	s.rows[key] = enrollment
	return enrollment, nil
}

func (s *stubLedger) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	_, ok := s.rows[[2]int64{studentID, courseID}]
	return ok, nil
}

func (s *stubLedger) CountActive(ctx context.Context, courseID int64) (int, error) {
	count := 0
	for key := range s.rows {
		if key[1] == courseID {
			count++
		}
	}
	return count, nil
}

func (s *stubLedger) Delete(ctx context.Context, studentID, courseID int64) error {
	key := [2]int64{studentID, courseID}
	if _, ok := s.rows[key]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(s.rows, key)
	return nil
}

func (s *stubLedger) ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	return nil, nil
}

func (s *stubLedger) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return nil, nil
}

func newEnrollmentTestRouter(t *testing.T, studentID int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	enrollmentService := services.NewEnrollmentService(
		&stubCatalog{course: &models.Course{ID: 1, Code: "CS101", Name: "Intro", Credits: 6, Capacity: 10}},
		stubGrades{},
		newStubLedger(),
		zerolog.Nop(),
	)
	controller := NewEnrollmentController(enrollmentService)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", studentID)
		c.Set("roleType", string(models.RoleStudent))
	})
	router.POST("/courses/:id/enroll", controller.EnrollSelf)
	router.DELETE("/courses/:id/enroll", controller.UnenrollSelf)

	return router
}

func TestUnenrollSelfNoContent(t *testing.T) {
	router := newEnrollmentTestRouter(t, 7)

	enroll := httptest.NewRecorder()
	router.ServeHTTP(enroll, httptest.NewRequest(http.MethodPost, "/courses/1/enroll", nil))
	if enroll.Code != http.StatusCreated {
		t.Fatalf("enroll status = %d, want %d", enroll.Code, http.StatusCreated)
	}

	unenroll := httptest.NewRecorder()
	router.ServeHTTP(unenroll, httptest.NewRequest(http.MethodDelete, "/courses/1/enroll", nil))
	if unenroll.Code != http.StatusNoContent {
		t.Fatalf("unenroll status = %d, want %d", unenroll.Code, http.StatusNoContent)
	}
	if unenroll.Body.Len() != 0 {
		t.Fatalf("204 response must have an empty body, got %q", unenroll.Body.String())
	}

	again := httptest.NewRecorder()
	router.ServeHTTP(again, httptest.NewRequest(http.MethodDelete, "/courses/1/enroll", nil))
	if again.Code != http.StatusNotFound {
		t.Fatalf("repeat unenroll status = %d, want %d", again.Code, http.StatusNotFound)
	}
}
