package dto

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@school.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"3f2a5c1e-..."`
}

// TokenResponse represents the token pair returned after authentication
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}

// UserProfile represents the authenticated user's own profile
type UserProfile struct {
	ID        int64  `json:"id" example:"1"`
	Email     string `json:"email" example:"user@school.edu"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
	RoleType  string `json:"roleType" example:"STUDENT" enums:"STUDENT,TEACHER,ADMIN"`
}
