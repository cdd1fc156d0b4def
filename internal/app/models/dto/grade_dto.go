package dto

// AssignGradeRequest represents a request to assign a grade to a student
type AssignGradeRequest struct {
	StudentID int64  `json:"studentId" binding:"required" example:"7"`
	Grade     string `json:"grade" binding:"required" example:"B+"`
}

// TranscriptEntry is one course line of a student's transcript, built from
// the latest grade record per course.
type TranscriptEntry struct {
	CourseID   int64   `json:"courseId" example:"3"`
	CourseCode string  `json:"courseCode" example:"CENG301"`
	CourseName string  `json:"courseName" example:"Algorithms"`
	Credits    int     `json:"credits" example:"6"`
	Grade      string  `json:"grade" example:"B+"`
	Points     float64 `json:"points" example:"3.3"`
}

// TranscriptResponse represents a student's transcript with the credit
// weighted GPA on a 4.0 scale.
type TranscriptResponse struct {
	StudentID    int64             `json:"studentId" example:"7"`
	Entries      []TranscriptEntry `json:"entries"`
	TotalCredits int               `json:"totalCredits" example:"24"`
	GPA          float64           `json:"gpa" example:"3.12"`
}
