package validation

import "testing"

func TestIsValidCourseCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"CS101", true},
		{"MATH201", true},
		{"EE042", true},
		{"PHYS301", true},
		{"cs101", false},
		{"C101", false},
		{"COMPSC101", false},
		{"CS10", false},
		{"CS1011", false},
		{"CS 101", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidCourseCode(tt.code); got != tt.want {
			t.Errorf("IsValidCourseCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"student@coursehub.edu", true},
		{"first.last@example.com", true},
		{"a+tag@sub.domain.org", true},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
