package dto

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Code            string  `json:"code" binding:"required,coursecode" example:"CENG301"`
	Name            string  `json:"name" binding:"required,min=2,max=200" example:"Algorithms"`
	Credits         int     `json:"credits" binding:"min=0" example:"6"`
	Capacity        int     `json:"capacity" binding:"min=0" example:"40"`
	PrerequisiteIDs []int64 `json:"prerequisiteIds,omitempty" example:"1,2"`
}

// UpdateCourseRequest represents a request to update a course.
// Capacity and Credits use pointers so zero is a valid update value.
type UpdateCourseRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=200" example:"Algorithms II"`
	Credits  *int   `json:"credits,omitempty" binding:"omitempty,min=0" example:"8"`
	Capacity *int   `json:"capacity,omitempty" binding:"omitempty,min=0" example:"50"`
}

// AddPrerequisiteRequest represents a request to add a prerequisite edge
type AddPrerequisiteRequest struct {
	PrerequisiteID int64 `json:"prerequisiteId" binding:"required" example:"2"`
}

// CourseFilter holds the query parameters accepted by the course list endpoint
type CourseFilter struct {
	Query    string `form:"q" example:"algo"`
	Page     int    `form:"page,default=1" example:"1"`
	PageSize int    `form:"size,default=10" example:"10"`
}

// CourseResponse represents a course with its current occupancy
type CourseResponse struct {
	ID              int64   `json:"id" example:"3"`
	Code            string  `json:"code" example:"CENG301"`
	Name            string  `json:"name" example:"Algorithms"`
	Credits         int     `json:"credits" example:"6"`
	Capacity        int     `json:"capacity" example:"40"`
	TeacherID       int64   `json:"teacherId" example:"2"`
	Occupancy       int     `json:"occupancy" example:"37"`
	SeatsLeft       int     `json:"seatsLeft" example:"3"`
	PrerequisiteIDs []int64 `json:"prerequisiteIds,omitempty" example:"1,2"`
}
