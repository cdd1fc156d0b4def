package dto

// EnrollStudentRequest represents a staff request to enroll a named student
type EnrollStudentRequest struct {
	StudentID int64 `json:"studentId" binding:"required" example:"7"`
}

// BulkEnrollRequest represents a request to enroll an ordered list of
// candidate students. Candidates earlier in the list have priority for the
// remaining seats.
type BulkEnrollRequest struct {
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1" example:"7,8,9"`
}

// BulkEnrollEntry is the outcome for a single candidate of a bulk enrollment
type BulkEnrollEntry struct {
	StudentID int64  `json:"studentId" example:"7"`
	Outcome   string `json:"outcome" example:"success" enums:"success,capacity,already_enrolled,prerequisite_unmet"`
}

// BulkEnrollResponse represents the full ordered result of a bulk enrollment
type BulkEnrollResponse struct {
	Results   []BulkEnrollEntry `json:"results"`
	SeatsLeft int               `json:"seatsLeft" example:"0"`
}
