package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/coursehub/internal/app/models/dto"
	"github.com/emirhan/coursehub/internal/app/services"
	"github.com/emirhan/coursehub/internal/middleware"
)

// EnrollmentController handles enrollment operations
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// EnrollSelf enrolls the authenticated student into a course
// @Summary Enroll in a course
// @Description Enrolls the authenticated student into the course if capacity and prerequisites allow
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Enrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course full or already enrolled"
// @Failure 422 {object} dto.ErrorResponse "Prerequisites not satisfied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enroll [post]
func (c *EnrollmentController) EnrollSelf(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	studentID := ctx.GetInt64("userID")

	enrollment, err := c.enrollmentService.Enroll(ctx, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}

// UnenrollSelf removes the authenticated student's enrollment from a course
// @Summary Unenroll from a course
// @Description Removes the authenticated student's active enrollment from the course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "Unenrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enroll [delete]
func (c *EnrollmentController) UnenrollSelf(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	studentID := ctx.GetInt64("userID")

	if err := c.enrollmentService.Unenroll(ctx, studentID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// EnrollStudent enrolls a named student into a course on behalf of staff
// @Summary Enroll a named student
// @Description Enrolls the given student into the course if capacity and prerequisites allow
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.EnrollStudentRequest true "Student to enroll"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Enrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course full or already enrolled"
// @Failure 422 {object} dto.ErrorResponse "Prerequisites not satisfied"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enrollments [post]
func (c *EnrollmentController) EnrollStudent(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	var req dto.EnrollStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx, req.StudentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}

// BulkEnroll enrolls an ordered candidate list into a course
// @Summary Bulk enroll candidates
// @Description Processes an ordered list of candidate students against the remaining seats. Earlier candidates have priority; every candidate receives exactly one outcome.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.BulkEnrollRequest true "Ordered candidate students"
// @Success 200 {object} dto.APIResponse{data=dto.BulkEnrollResponse} "Bulk enrollment processed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enrollments/bulk [post]
func (c *EnrollmentController) BulkEnroll(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	var req dto.BulkEnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid bulk enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.enrollmentService.BulkEnroll(ctx, courseID, req.StudentIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.BulkEnrollResponse{
		Results:   make([]dto.BulkEnrollEntry, 0, len(result.Results)),
		SeatsLeft: result.SeatsLeft,
	}
	for _, entry := range result.Results {
		response.Results = append(response.Results, dto.BulkEnrollEntry{
			StudentID: entry.StudentID,
			Outcome:   string(entry.Outcome),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      response,
		Timestamp: time.Now(),
	})
}

// GetRoster retrieves the enrolled students of a course
// @Summary Get course roster
// @Description Retrieves the list of students currently enrolled in the course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Roster retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/roster [get]
func (c *EnrollmentController) GetRoster(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	roster, err := c.enrollmentService.GetRoster(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      roster,
		Timestamp: time.Now(),
	})
}

// GetMyEnrollments retrieves the authenticated student's enrollments
// @Summary Get own enrollments
// @Description Retrieves the authenticated student's active enrollments with course details
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/me [get]
func (c *EnrollmentController) GetMyEnrollments(ctx *gin.Context) {
	studentID := ctx.GetInt64("userID")

	enrollments, err := c.enrollmentService.GetStudentEnrollments(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollments,
		Timestamp: time.Now(),
	})
}

// CheckEligibility runs the eligibility check without enrolling
// @Summary Check enrollment eligibility
// @Description Evaluates whether the authenticated student satisfies the course prerequisites, without enrolling
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Eligibility verdict"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/eligibility [get]
func (c *EnrollmentController) CheckEligibility(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	studentID := ctx.GetInt64("userID")

	verdict, err := c.enrollmentService.Evaluate(ctx, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"admit":  verdict.Admit,
			"reason": string(verdict.Reason),
		},
		Timestamp: time.Now(),
	})
}
