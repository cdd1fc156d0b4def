package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
)

type pair struct {
	studentID int64
	courseID  int64
}

// fakeCatalog serves courses from a map.
type fakeCatalog struct {
	courses map[int64]*models.Course
}

func (f *fakeCatalog) GetCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	course, ok := f.courses[courseID]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// fakeGrades serves grade lookups from per-pair append-only histories,
// resolving the latest record through the same selection the repository uses.
type fakeGrades struct {
	history map[pair][]*models.GradeRecord
}

func (f *fakeGrades) GetLatestGrade(ctx context.Context, studentID, courseID int64) (models.Grade, error) {
	latest := models.LatestGradeRecord(f.history[pair{studentID, courseID}])
	if latest == nil {
		return "", apperrors.ErrGradeNotFound
	}
	return latest.Grade, nil
}

// fakeLedger is an in-memory enrollment store. The mutex makes InsertIfAbsent
// atomic the same way the unique constraint does in the real store.
type fakeLedger struct {
	mu      sync.Mutex
	rows    map[pair]*models.Enrollment
	nextID  int64
	inserts int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: make(map[pair]*models.Enrollment)}
}

func (f *fakeLedger) InsertIfAbsent(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pair{studentID, courseID}
	if _, ok := f.rows[key]; ok {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	f.nextID++
	f.inserts++
	enrollment := &models.Enrollment{ID: f.nextID, StudentID: studentID, CourseID: courseID}
	f.rows[key] = enrollment
	return enrollment, nil
}

func (f *fakeLedger) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[pair{studentID, courseID}]
	return ok, nil
}

func (f *fakeLedger) CountActive(ctx context.Context, courseID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for key := range f.rows {
		if key.courseID == courseID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) Delete(ctx context.Context, studentID, courseID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pair{studentID, courseID}
	if _, ok := f.rows[key]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.rows, key)
	return nil
}

func (f *fakeLedger) ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Enrollment
	for key, e := range f.rows {
		if key.courseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Enrollment
	for key, e := range f.rows {
		if key.studentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestService(courses map[int64]*models.Course, grades map[pair]models.Grade) (*EnrollmentService, *fakeLedger) {
	history := make(map[pair][]*models.GradeRecord, len(grades))
	nextID := int64(0)
	for key, grade := range grades {
		nextID++
		history[key] = []*models.GradeRecord{{
			ID:         nextID,
			StudentID:  key.studentID,
			CourseID:   key.courseID,
			Grade:      grade,
			AssignedAt: time.Unix(1000+nextID, 0),
		}}
	}
	return newTestServiceWithHistory(courses, history)
}

func newTestServiceWithHistory(courses map[int64]*models.Course, history map[pair][]*models.GradeRecord) (*EnrollmentService, *fakeLedger) {
	ledger := newFakeLedger()
	svc := NewEnrollmentService(
		&fakeCatalog{courses: courses},
		&fakeGrades{history: history},
		ledger,
		zerolog.Nop(),
	)
	return svc, ledger
}

func course(id int64, capacity int, prereqs ...int64) *models.Course {
	return &models.Course{
		ID:              id,
		Code:            "CS101",
		Name:            "Test Course",
		Credits:         6,
		Capacity:        capacity,
		TeacherID:       99,
		PrerequisiteIDs: prereqs,
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, ledger := newTestService(map[int64]*models.Course{}, nil)

	_, err := svc.Enroll(context.Background(), 1, 42)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if ledger.inserts != 0 {
		t.Fatalf("expected no inserts, got %d", ledger.inserts)
	}
}

func TestEnrollNoPrerequisites(t *testing.T) {
	svc, ledger := newTestService(map[int64]*models.Course{1: course(1, 10)}, nil)

	enrollment, err := svc.Enroll(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enrollment.StudentID != 7 || enrollment.CourseID != 1 {
		t.Fatalf("unexpected enrollment %+v", enrollment)
	}
	if ledger.inserts != 1 {
		t.Fatalf("expected 1 insert, got %d", ledger.inserts)
	}
}

func TestEnrollCapacityReached(t *testing.T) {
	svc, ledger := newTestService(map[int64]*models.Course{1: course(1, 1)}, nil)

	if _, err := svc.Enroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}

	_, err := svc.Enroll(context.Background(), 8, 1)
	if !errors.Is(err, apperrors.ErrCourseFull) {
		t.Fatalf("expected ErrCourseFull, got %v", err)
	}
	if ledger.inserts != 1 {
		t.Fatalf("expected occupancy unchanged at 1, got %d inserts", ledger.inserts)
	}
}

func TestEnrollZeroCapacity(t *testing.T) {
	svc, _ := newTestService(map[int64]*models.Course{1: course(1, 0)}, nil)

	_, err := svc.Enroll(context.Background(), 7, 1)
	if !errors.Is(err, apperrors.ErrCourseFull) {
		t.Fatalf("expected ErrCourseFull for zero-capacity course, got %v", err)
	}
}

func TestEnrollPrerequisites(t *testing.T) {
	tests := []struct {
		name    string
		grades  map[pair]models.Grade
		wantErr error
	}{
		{
			name:    "no grade on record",
			grades:  nil,
			wantErr: apperrors.ErrPrerequisiteUnmet,
		},
		{
			name:    "failing grade",
			grades:  map[pair]models.Grade{{7, 10}: models.GradeF},
			wantErr: apperrors.ErrPrerequisiteUnmet,
		},
		{
			name:   "lowest passing grade",
			grades: map[pair]models.Grade{{7, 10}: models.GradeD},
		},
		{
			name:   "top grade",
			grades: map[pair]models.Grade{{7, 10}: models.GradeAPlus},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses := map[int64]*models.Course{
				1:  course(1, 10, 10),
				10: course(10, 10),
			}
			svc, ledger := newTestService(courses, tt.grades)

			_, err := svc.Enroll(context.Background(), 7, 1)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if ledger.inserts != 0 {
					t.Fatalf("denied enrollment must not write, got %d inserts", ledger.inserts)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEnrollRetakeUsesLatestGrade(t *testing.T) {
	record := func(id int64, grade models.Grade, assignedAt time.Time) *models.GradeRecord {
		return &models.GradeRecord{
			ID:         id,
			StudentID:  7,
			CourseID:   10,
			Grade:      grade,
			AssignedAt: assignedAt,
		}
	}
	t1 := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		history []*models.GradeRecord
		wantErr error
	}{
		{
			name:    "failed then passed on retake",
			history: []*models.GradeRecord{record(1, models.GradeF, t1), record(2, models.GradeD, t2)},
		},
		{
			name:    "passed then failed on retake",
			history: []*models.GradeRecord{record(1, models.GradeD, t1), record(2, models.GradeF, t2)},
			wantErr: apperrors.ErrPrerequisiteUnmet,
		},
		{
			name:    "storage order does not matter",
			history: []*models.GradeRecord{record(2, models.GradeF, t2), record(1, models.GradeD, t1)},
			wantErr: apperrors.ErrPrerequisiteUnmet,
		},
		{
			name:    "equal timestamps break to highest id, passing",
			history: []*models.GradeRecord{record(1, models.GradeF, t1), record(2, models.GradeD, t1)},
		},
		{
			name:    "equal timestamps break to highest id, failing",
			history: []*models.GradeRecord{record(1, models.GradeD, t1), record(2, models.GradeF, t1)},
			wantErr: apperrors.ErrPrerequisiteUnmet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses := map[int64]*models.Course{
				1:  course(1, 10, 10),
				10: course(10, 10),
			}
			history := map[pair][]*models.GradeRecord{{7, 10}: tt.history}
			svc, ledger := newTestServiceWithHistory(courses, history)

			_, err := svc.Enroll(context.Background(), 7, 1)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if ledger.inserts != 0 {
					t.Fatalf("denied enrollment must not write, got %d inserts", ledger.inserts)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEnrollAllPrerequisitesRequired(t *testing.T) {
	// One prerequisite passed, the other failed: deny, nothing written.
	courses := map[int64]*models.Course{
		1:  course(1, 10, 10, 11),
		10: course(10, 10),
		11: course(11, 10),
	}
	grades := map[pair]models.Grade{
		{7, 10}: models.GradeA,
		{7, 11}: models.GradeF,
	}
	svc, ledger := newTestService(courses, grades)

	_, err := svc.Enroll(context.Background(), 7, 1)
	if !errors.Is(err, apperrors.ErrPrerequisiteUnmet) {
		t.Fatalf("expected ErrPrerequisiteUnmet, got %v", err)
	}
	if ledger.inserts != 0 {
		t.Fatalf("expected no inserts, got %d", ledger.inserts)
	}
}

func TestEnrollAlreadyEnrolled(t *testing.T) {
	svc, ledger := newTestService(map[int64]*models.Course{1: course(1, 10)}, nil)

	if _, err := svc.Enroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}

	_, err := svc.Enroll(context.Background(), 7, 1)
	if !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}

	count, _ := ledger.CountActive(context.Background(), 1)
	if count != 1 {
		t.Fatalf("re-enroll must not change occupancy, got %d", count)
	}
}

func TestConcurrentEnrollSamePair(t *testing.T) {
	svc, ledger := newTestService(map[int64]*models.Course{1: course(1, 100)}, nil)

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Enroll(context.Background(), 7, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrAlreadyEnrolled):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Fatalf("expected exactly one successful enrollment, got %d", successes)
	}
	if conflicts != attempts-1 {
		t.Fatalf("expected %d conflicts, got %d", attempts-1, conflicts)
	}
	if ledger.inserts != 1 {
		t.Fatalf("expected a single row, got %d", ledger.inserts)
	}
}

func TestBulkEnrollOrderPriority(t *testing.T) {
	// One seat, three eligible candidates: the first wins, the list is
	// processed in order and never short-circuited.
	svc, _ := newTestService(map[int64]*models.Course{1: course(1, 1)}, nil)

	result, err := svc.BulkEnroll(context.Background(), 1, []int64{101, 102, 103})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []BulkEnrollEntry{
		{StudentID: 101, Outcome: OutcomeSuccess},
		{StudentID: 102, Outcome: OutcomeCapacity},
		{StudentID: 103, Outcome: OutcomeCapacity},
	}
	if len(result.Results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(result.Results))
	}
	for i, entry := range result.Results {
		if entry != want[i] {
			t.Errorf("result[%d] = %+v, want %+v", i, entry, want[i])
		}
	}
	if result.SeatsLeft != 0 {
		t.Fatalf("expected 0 seats left, got %d", result.SeatsLeft)
	}
}

func TestBulkEnrollMixedOutcomes(t *testing.T) {
	courses := map[int64]*models.Course{
		1:  course(1, 10, 10),
		10: course(10, 10),
	}
	grades := map[pair]models.Grade{
		{101, 10}: models.GradeB,
		{103, 10}: models.GradeCPlus,
		{104, 10}: models.GradeA,
	}
	svc, _ := newTestService(courses, grades)

	// 103 is already enrolled before the batch runs.
	if _, err := svc.Enroll(context.Background(), 103, 1); err != nil {
		t.Fatalf("setup enroll failed: %v", err)
	}

	result, err := svc.BulkEnroll(context.Background(), 1, []int64{101, 102, 103, 104})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []BulkEnrollEntry{
		{StudentID: 101, Outcome: OutcomeSuccess},
		{StudentID: 102, Outcome: OutcomePrerequisiteUnmet},
		{StudentID: 103, Outcome: OutcomeAlreadyEnrolled},
		{StudentID: 104, Outcome: OutcomeSuccess},
	}
	for i, entry := range result.Results {
		if entry != want[i] {
			t.Errorf("result[%d] = %+v, want %+v", i, entry, want[i])
		}
	}
}

func TestBulkEnrollIneligibleDoesNotConsumeSeat(t *testing.T) {
	// Two seats: the prerequisite-unmet candidate in the middle must not
	// consume one, so the last candidate still gets in.
	courses := map[int64]*models.Course{
		1:  course(1, 2, 10),
		10: course(10, 10),
	}
	grades := map[pair]models.Grade{
		{101, 10}: models.GradeB,
		{103, 10}: models.GradeB,
	}
	svc, _ := newTestService(courses, grades)

	result, err := svc.BulkEnroll(context.Background(), 1, []int64{101, 102, 103})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []BulkEnrollEntry{
		{StudentID: 101, Outcome: OutcomeSuccess},
		{StudentID: 102, Outcome: OutcomePrerequisiteUnmet},
		{StudentID: 103, Outcome: OutcomeSuccess},
	}
	for i, entry := range result.Results {
		if entry != want[i] {
			t.Errorf("result[%d] = %+v, want %+v", i, entry, want[i])
		}
	}
	if result.SeatsLeft != 0 {
		t.Fatalf("expected 0 seats left, got %d", result.SeatsLeft)
	}
}

func TestBulkEnrollUnknownCourse(t *testing.T) {
	svc, _ := newTestService(map[int64]*models.Course{}, nil)

	_, err := svc.BulkEnroll(context.Background(), 42, []int64{1, 2})
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestBulkEnrollEmptyList(t *testing.T) {
	svc, _ := newTestService(map[int64]*models.Course{1: course(1, 5)}, nil)

	result, err := svc.BulkEnroll(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Results) != 0 {
		t.Fatalf("expected empty results, got %d", len(result.Results))
	}
	if result.SeatsLeft != 5 {
		t.Fatalf("expected 5 seats left, got %d", result.SeatsLeft)
	}
}

func TestUnenroll(t *testing.T) {
	svc, _ := newTestService(map[int64]*models.Course{1: course(1, 10)}, nil)

	if _, err := svc.Enroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	if err := svc.Unenroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("unenroll failed: %v", err)
	}

	err := svc.Unenroll(context.Background(), 7, 1)
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Fatalf("expected ErrEnrollmentNotFound, got %v", err)
	}

	// The seat is free again after unenroll.
	if _, err := svc.Enroll(context.Background(), 7, 1); err != nil {
		t.Fatalf("re-enroll after unenroll failed: %v", err)
	}
}

func TestEvaluateIsReadOnly(t *testing.T) {
	courses := map[int64]*models.Course{
		1:  course(1, 10, 10),
		10: course(10, 10),
	}
	grades := map[pair]models.Grade{{7, 10}: models.GradeA}
	svc, ledger := newTestService(courses, grades)

	verdict, err := svc.Evaluate(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verdict.Admit {
		t.Fatalf("expected admit, got deny %q", verdict.Reason)
	}
	if ledger.inserts != 0 {
		t.Fatalf("evaluate must not write, got %d inserts", ledger.inserts)
	}
}

func TestEvaluateDenyReasons(t *testing.T) {
	tests := []struct {
		name       string
		courseID   int64
		wantAdmit  bool
		wantReason DenyReason
	}{
		{name: "unknown course", courseID: 42, wantReason: DenyCourseNotFound},
		{name: "prerequisite unmet", courseID: 1, wantReason: DenyPrerequisiteUnmet},
		{name: "eligible", courseID: 10, wantAdmit: true},
	}

	courses := map[int64]*models.Course{
		1:  course(1, 10, 10),
		10: course(10, 10),
	}
	svc, _ := newTestService(courses, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := svc.Evaluate(context.Background(), 7, tt.courseID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if verdict.Admit != tt.wantAdmit {
				t.Fatalf("admit = %v, want %v", verdict.Admit, tt.wantAdmit)
			}
			if verdict.Reason != tt.wantReason {
				t.Fatalf("reason = %q, want %q", verdict.Reason, tt.wantReason)
			}
		})
	}
}
