package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/coursehub/internal/app/models/dto"
	"github.com/emirhan/coursehub/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "course not found", err: apperrors.ErrCourseNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "user not found", err: apperrors.ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "enrollment not found", err: apperrors.ErrEnrollmentNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "course full", err: apperrors.ErrCourseFull, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeCourseFull},
		{name: "already enrolled", err: apperrors.ErrAlreadyEnrolled, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeAlreadyEnrolled},
		{name: "prerequisite unmet", err: apperrors.ErrPrerequisiteUnmet, wantStatus: http.StatusUnprocessableEntity, wantCode: dto.ErrorCodePrerequisiteUnmet},
		{name: "email exists", err: apperrors.ErrEmailAlreadyExists, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "self prerequisite", err: apperrors.ErrSelfPrerequisite, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "invalid grade", err: apperrors.ErrInvalidGrade, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidCredentials},
		{name: "token expired", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeExpiredToken},
		{name: "wrapped sentinel", err: errors.Join(errors.New("context"), apperrors.ErrCourseFull), wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeCourseFull},
		{name: "unknown error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(recorder)

			HandleAPIError(ctx, tt.err)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}

			var body dto.APIResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Error == nil {
				t.Fatal("expected an error detail in the response")
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}
