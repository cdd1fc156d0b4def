package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/app/models/dto"
	"github.com/emirhan/coursehub/internal/app/services"
	"github.com/emirhan/coursehub/internal/middleware"
)

// GradeController handles grade and transcript operations
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{
		gradeService: gradeService,
	}
}

// AssignGrade records a grade for a student in a course
// @Summary Assign a grade
// @Description Appends a grade record for the student in the course. Teachers may only grade their own courses.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.AssignGradeRequest true "Grade to assign"
// @Success 201 {object} dto.APIResponse{data=models.GradeRecord} "Grade assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or grade value"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Course or student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/grades [post]
func (c *GradeController) AssignGrade(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	var req dto.AssignGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actorID, actorRole := actorFromContext(ctx)

	record, err := c.gradeService.AssignGrade(ctx, actorID, actorRole, courseID, req.StudentID, models.Grade(req.Grade))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      record,
		Timestamp: time.Now(),
	})
}

// GetStudentGrades retrieves a student's grade history
// @Summary Get student grades
// @Description Retrieves the full grade history of a student. Students may only view their own grades.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.GradeRecord} "Grades retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/grades [get]
func (c *GradeController) GetStudentGrades(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "student ID")
	if !ok {
		return
	}

	actorID, actorRole := actorFromContext(ctx)

	grades, err := c.gradeService.GetStudentGrades(ctx, actorID, actorRole, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      grades,
		Timestamp: time.Now(),
	})
}

// GetTranscript retrieves a student's transcript with GPA
// @Summary Get student transcript
// @Description Retrieves the latest grade per course and the credit-weighted GPA. Students may only view their own transcript.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.TranscriptResponse} "Transcript retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/transcript [get]
func (c *GradeController) GetTranscript(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "student ID")
	if !ok {
		return
	}

	actorID, actorRole := actorFromContext(ctx)

	transcript, err := c.gradeService.GetTranscript(ctx, actorID, actorRole, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      transcript,
		Timestamp: time.Now(),
	})
}
