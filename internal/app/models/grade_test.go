package models

import (
	"testing"
	"time"
)

func TestGradeIsValid(t *testing.T) {
	valid := []Grade{
		GradeAPlus, GradeA, GradeAMinus,
		GradeBPlus, GradeB, GradeBMinus,
		GradeCPlus, GradeC, GradeCMinus,
		GradeD, GradeF,
	}
	for _, g := range valid {
		if !g.IsValid() {
			t.Errorf("expected %q to be valid", g)
		}
	}

	invalid := []Grade{"", "E", "a", "A +", "B++", "PASS"}
	for _, g := range invalid {
		if g.IsValid() {
			t.Errorf("expected %q to be invalid", g)
		}
	}
}

func TestGradeIsPassing(t *testing.T) {
	tests := []struct {
		grade Grade
		want  bool
	}{
		{GradeAPlus, true},
		{GradeC, true},
		{GradeD, true},
		{GradeF, false},
		{"E", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.grade.IsPassing(); got != tt.want {
			t.Errorf("Grade(%q).IsPassing() = %v, want %v", tt.grade, got, tt.want)
		}
	}
}

func TestGradePoints(t *testing.T) {
	tests := []struct {
		grade Grade
		want  float64
	}{
		{GradeAPlus, 4.0},
		{GradeA, 4.0},
		{GradeAMinus, 3.7},
		{GradeBPlus, 3.3},
		{GradeB, 3.0},
		{GradeBMinus, 2.7},
		{GradeCPlus, 2.3},
		{GradeC, 2.0},
		{GradeCMinus, 1.7},
		{GradeD, 1.0},
		{GradeF, 0.0},
		{"E", 0.0},
	}

	for _, tt := range tests {
		if got := tt.grade.Points(); got != tt.want {
			t.Errorf("Grade(%q).Points() = %v, want %v", tt.grade, got, tt.want)
		}
	}
}

func TestLatestGradeRecord(t *testing.T) {
	t1 := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	record := func(id int64, grade Grade, assignedAt time.Time) *GradeRecord {
		return &GradeRecord{ID: id, Grade: grade, AssignedAt: assignedAt}
	}

	tests := []struct {
		name    string
		records []*GradeRecord
		wantID  int64
	}{
		{
			name:    "later timestamp wins",
			records: []*GradeRecord{record(1, GradeF, t1), record(2, GradeD, t2)},
			wantID:  2,
		},
		{
			name:    "slice order does not matter",
			records: []*GradeRecord{record(2, GradeD, t2), record(1, GradeF, t1)},
			wantID:  2,
		},
		{
			name:    "equal timestamps break to highest id",
			records: []*GradeRecord{record(2, GradeD, t1), record(1, GradeF, t1)},
			wantID:  2,
		},
		{
			name:    "single record",
			records: []*GradeRecord{record(1, GradeB, t1)},
			wantID:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			latest := LatestGradeRecord(tt.records)
			if latest == nil {
				t.Fatal("expected a record, got nil")
			}
			if latest.ID != tt.wantID {
				t.Errorf("latest.ID = %d, want %d", latest.ID, tt.wantID)
			}
		})
	}

	if latest := LatestGradeRecord(nil); latest != nil {
		t.Errorf("expected nil for empty history, got %+v", latest)
	}
}

func TestRoleTypeIsValid(t *testing.T) {
	for _, r := range []RoleType{RoleStudent, RoleTeacher, RoleAdmin} {
		if !r.IsValid() {
			t.Errorf("expected role %q to be valid", r)
		}
	}
	for _, r := range []RoleType{"", "student", "SUPERUSER"} {
		if r.IsValid() {
			t.Errorf("expected role %q to be invalid", r)
		}
	}
}
