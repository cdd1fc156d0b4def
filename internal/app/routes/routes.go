package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emirhan/coursehub/internal/app/controllers"
	"github.com/emirhan/coursehub/internal/app/models"
	"github.com/emirhan/coursehub/internal/app/models/dto"
	"github.com/emirhan/coursehub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	gradeController *controllers.GradeController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.GetProfile)

		// User management (admin only)
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			users.POST("", userController.CreateUser)
			users.GET("", userController.SearchUsers)
			users.GET("/:id", userController.GetUserByID)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}

		// Course catalog
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id", courseController.GetCourseByID)

			// Student self-service enrollment
			coursesStudentProtected := courses.Group("")
			coursesStudentProtected.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				coursesStudentProtected.POST("/:id/enroll", enrollmentController.EnrollSelf)
				coursesStudentProtected.DELETE("/:id/enroll", enrollmentController.UnenrollSelf)
				coursesStudentProtected.GET("/:id/eligibility", enrollmentController.CheckEligibility)
			}

			// Staff course and roster management
			coursesStaffProtected := courses.Group("")
			coursesStaffProtected.Use(authMiddleware.RoleRequired(string(models.RoleTeacher), string(models.RoleAdmin)))
			{
				coursesStaffProtected.POST("", courseController.CreateCourse)
				coursesStaffProtected.PUT("/:id", courseController.UpdateCourse)
				coursesStaffProtected.DELETE("/:id", courseController.DeleteCourse)

				coursesStaffProtected.POST("/:id/prerequisites", courseController.AddPrerequisite)
				coursesStaffProtected.DELETE("/:id/prerequisites/:prereqId", courseController.RemovePrerequisite)

				coursesStaffProtected.GET("/:id/roster", enrollmentController.GetRoster)
				coursesStaffProtected.POST("/:id/enrollments", enrollmentController.EnrollStudent)
				coursesStaffProtected.POST("/:id/enrollments/bulk", enrollmentController.BulkEnroll)

				coursesStaffProtected.POST("/:id/grades", gradeController.AssignGrade)
			}
		}

		// Student grade history and transcript
		students := authenticated.Group("/students")
		{
			students.GET("/:id/grades", gradeController.GetStudentGrades)
			students.GET("/:id/transcript", gradeController.GetTranscript)
		}

		// Own enrollments
		authenticated.GET("/enrollments/me", enrollmentController.GetMyEnrollments)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
