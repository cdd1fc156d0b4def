package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/app/models/dto"
	"github.com/emirhan/coursehub/internal/app/services"
	"github.com/emirhan/coursehub/internal/middleware"
	"github.com/emirhan/coursehub/internal/pkg/helpers"
)

// CourseController handles course catalog operations
type CourseController struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, enrollmentService *services.EnrollmentService) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// actorFromContext reads the authenticated actor set by the JWT middleware
func actorFromContext(ctx *gin.Context) (int64, models.RoleType) {
	return ctx.GetInt64("userID"), models.RoleType(ctx.GetString("roleType"))
}

// parseIDParam parses a numeric path parameter, writing a 400 response on failure
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label)
		errorDetail = errorDetail.WithDetails(label + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// bindingErrorDetails turns a binding error into per-field messages when the
// error carries field-level validation information.
func bindingErrorDetails(err error) interface{} {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		details := make([]string, 0, len(vErrs))
		for _, fe := range vErrs {
			details = append(details, middleware.FormatValidationError(fe))
		}
		return details
	}
	return err.Error()
}

func courseToResponse(course *models.Course, occupancy int) dto.CourseResponse {
	seatsLeft := course.Capacity - occupancy
	if seatsLeft < 0 {
		seatsLeft = 0
	}
	return dto.CourseResponse{
		ID:              course.ID,
		Code:            course.Code,
		Name:            course.Name,
		Credits:         course.Credits,
		Capacity:        course.Capacity,
		TeacherID:       course.TeacherID,
		Occupancy:       occupancy,
		SeatsLeft:       seatsLeft,
		PrerequisiteIDs: course.PrerequisiteIDs,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a new course owned by the authenticated teacher or, for admins, by the caller
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(bindingErrorDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actorID, _ := actorFromContext(ctx)

	course := &models.Course{
		Code:            req.Code,
		Name:            req.Name,
		Credits:         req.Credits,
		Capacity:        req.Capacity,
		TeacherID:       actorID,
		PrerequisiteIDs: req.PrerequisiteIDs,
	}

	if err := c.courseService.CreateCourse(ctx, course); err != nil {
		if errors.Is(err, services.ErrCourseValidation) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
			errorDetail = errorDetail.WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      courseToResponse(course, 0),
		Timestamp: time.Now(),
	})
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Description Retrieves a specific course with its current occupancy and prerequisites
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	course, occupancy, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courseToResponse(course, occupancy),
		Timestamp: time.Now(),
	})
}

// ListCourses lists courses matching the given filter
// @Summary List courses
// @Description Retrieves a paginated list of courses filtered by an optional search term
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term matched against code and name"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var filter dto.CourseFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	courses, total, err := c.courseService.ListCourses(ctx, filter.Query, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pagination := helpers.NewPaginationInfo(total, filter.Page, limit)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:       courses,
		Pagination: &pagination,
		Timestamp:  time.Now(),
	})
}

// UpdateCourse updates an existing course
// @Summary Update a course
// @Description Updates a course's name, credits and capacity. Teachers may only update their own courses.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Updated course information"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actorID, actorRole := actorFromContext(ctx)

	course, err := c.courseService.UpdateCourse(ctx, actorID, actorRole, id, req.Name, req.Credits, req.Capacity)
	if err != nil {
		if errors.Is(err, services.ErrCourseValidation) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
			errorDetail = errorDetail.WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Description Deletes an existing course. Teachers may only delete their own courses.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "Course deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	actorID, actorRole := actorFromContext(ctx)

	if err := c.courseService.DeleteCourse(ctx, actorID, actorRole, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddPrerequisite adds a prerequisite edge to a course
// @Summary Add a prerequisite
// @Description Adds a direct prerequisite edge to a course. Self-prerequisites are rejected.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.AddPrerequisiteRequest true "Prerequisite course"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Prerequisite added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/prerequisites [post]
func (c *CourseController) AddPrerequisite(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}

	var req dto.AddPrerequisiteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid prerequisite data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actorID, actorRole := actorFromContext(ctx)

	if err := c.courseService.AddPrerequisite(ctx, actorID, actorRole, id, req.PrerequisiteID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Prerequisite added successfully"},
		Timestamp: time.Now(),
	})
}

// RemovePrerequisite removes a prerequisite edge from a course
// @Summary Remove a prerequisite
// @Description Removes a direct prerequisite edge from a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param prereqId path int true "Prerequisite course ID"
// @Success 204 "Prerequisite removed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course or prerequisite edge not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/prerequisites/{prereqId} [delete]
func (c *CourseController) RemovePrerequisite(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course ID")
	if !ok {
		return
	}
	prereqID, ok := parseIDParam(ctx, "prereqId", "prerequisite ID")
	if !ok {
		return
	}

	actorID, actorRole := actorFromContext(ctx)

	if err := c.courseService.RemovePrerequisite(ctx, actorID, actorRole, id, prereqID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
