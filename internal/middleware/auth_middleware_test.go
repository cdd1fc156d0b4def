package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/pkg/auth"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "coursehub.test",
	})
	authMiddleware := NewAuthMiddleware(jwtService)

	router := gin.New()
	protected := router.Group("/", authMiddleware.JWTAuth())
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetInt64("userID")})
	})
	protected.GET("/admin", authMiddleware.RoleRequired(string(models.RoleAdmin)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	protected.GET("/staff", authMiddleware.RoleRequired(string(models.RoleTeacher), string(models.RoleAdmin)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, jwtService
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       7,
		Email:    "user@coursehub.edu",
		RoleType: role,
	})
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	return accessToken
}

func TestJWTAuth(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "not-a-bearer", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + tokenFor(t, jwtService, models.RoleStudent), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
		})
	}
}

func TestRoleRequired(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	tests := []struct {
		name       string
		path       string
		role       models.RoleType
		wantStatus int
	}{
		{name: "admin on admin route", path: "/admin", role: models.RoleAdmin, wantStatus: http.StatusOK},
		{name: "student on admin route", path: "/admin", role: models.RoleStudent, wantStatus: http.StatusForbidden},
		{name: "teacher on staff route", path: "/staff", role: models.RoleTeacher, wantStatus: http.StatusOK},
		{name: "admin on staff route", path: "/staff", role: models.RoleAdmin, wantStatus: http.StatusOK},
		{name: "student on staff route", path: "/staff", role: models.RoleStudent, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, tt.role))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
		})
	}
}
