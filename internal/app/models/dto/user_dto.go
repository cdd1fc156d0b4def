package dto

// CreateUserRequest represents an admin request to create a user account
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email" example:"new.user@school.edu"`
	Password  string `json:"password" binding:"required,min=8" example:"secret123"`
	FirstName string `json:"firstName" binding:"required,min=2,max=100" example:"Jane"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100" example:"Doe"`
	RoleType  string `json:"roleType" binding:"required,oneof=STUDENT TEACHER ADMIN" example:"STUDENT"`
}

// UpdateUserRequest represents an admin request to update a user account.
// Zero-value fields are left unchanged.
type UpdateUserRequest struct {
	Email     string `json:"email" binding:"omitempty,email" example:"new.user@school.edu"`
	FirstName string `json:"firstName" binding:"omitempty,min=2,max=100" example:"Jane"`
	LastName  string `json:"lastName" binding:"omitempty,min=2,max=100" example:"Doe"`
	RoleType  string `json:"roleType" binding:"omitempty,oneof=STUDENT TEACHER ADMIN" example:"TEACHER"`
	IsActive  *bool  `json:"isActive,omitempty" example:"true"`
}

// UserFilter holds the query parameters accepted by the user search endpoint
type UserFilter struct {
	Query    string `form:"q" example:"doe"`
	RoleType string `form:"role" binding:"omitempty,oneof=STUDENT TEACHER ADMIN" example:"STUDENT"`
	Page     int    `form:"page,default=1" example:"1"`
	PageSize int    `form:"size,default=10" example:"10"`
}
