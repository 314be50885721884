package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oguzk/acadrecord/internal/app/controllers"
	"github.com/oguzk/acadrecord/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	importController *controllers.ImportController,
	recordsController *controllers.RecordsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.SessionAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		// CSV import routes
		imports := authenticated.Group("/imports")
		{
			imports.POST("", importController.Upload)
			imports.GET("/template", importController.Template)
		}

		// Student read routes
		students := authenticated.Group("/students")
		{
			students.GET("", recordsController.ListStudents)
			students.GET("/:studentId", recordsController.GetStudent)
			students.GET("/:studentId/attendance", recordsController.StudentAttendance)
			students.GET("/:studentId/scores", recordsController.StudentScores)
			students.GET("/:studentId/backlogs", recordsController.StudentBacklogs)
			students.GET("/:studentId/fees", recordsController.StudentFees)
			students.GET("/:studentId/projects", recordsController.StudentProjects)
			students.GET("/:studentId/phd", recordsController.StudentPhD)
			students.GET("/:studentId/fellowships", recordsController.StudentFellowships)
		}

		authenticated.GET("/batches", recordsController.ListBatches)
		authenticated.GET("/courses", recordsController.ListCourses)
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
