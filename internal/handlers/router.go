package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-suite/student-service/internal/config"
	"github.com/campus-suite/student-service/internal/models"
	"github.com/campus-suite/student-service/internal/repositories"
	"github.com/campus-suite/student-service/internal/services"
	"github.com/campus-suite/student-service/internal/utils"
)

type HandlerManager struct {
	studentHandler *StudentHandler
	authMiddleware *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	return &HandlerManager{
		studentHandler: NewStudentHandler(serviceManager.Student(), serviceManager.Roster(), logger),
		authMiddleware: NewCasdoorAuthMiddleware(casdoorConfig, userRepo),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// API v1 routes with authentication
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		students := v1.Group("/students")
		{
			// View - teachers and admins
			students.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.studentHandler.ListStudents)
			students.GET("/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.studentHandler.ExportStudents)
			students.GET("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.studentHandler.GetStudentDetail)

			// Modify - admins only
			students.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.studentHandler.AddStudent)
			students.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.studentHandler.UpdateStudent)
			students.POST("/:id/status", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.studentHandler.SetStudentStatus)
			students.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.studentHandler.DeleteStudent)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "student-service",
		})
	})
}
