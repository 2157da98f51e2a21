// Package routes wires the controllers onto the gin engine.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edudesk/edudesk/internal/app/controllers"
	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/models/dto"
	"github.com/edudesk/edudesk/internal/middleware"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Students       *controllers.EntityController[models.Student]
	Teachers       *controllers.EntityController[models.Teacher]
	Courses        *controllers.EntityController[models.Course]
	ClassSchedules *controllers.EntityController[models.ClassSchedule]
	Assignments    *controllers.EntityController[models.Assignment]
	Attendance     *controllers.EntityController[models.AttendanceRecord]
	Transactions   *controllers.EntityController[models.Transaction]
	Announcements  *controllers.EntityController[models.Announcement]
	Books          *controllers.EntityController[models.Book]
	BookIssues     *controllers.EntityController[models.BookIssue]
	Exams          *controllers.EntityController[models.Exam]
	Grades         *controllers.EntityController[models.Grade]

	Library    *controllers.LibraryController
	Stats      *controllers.StatsController
	SuperAdmin *controllers.SuperAdminController
	Auth       *controllers.AuthController
}

// Setup registers all application routes.
func Setup(router *gin.Engine, c Controllers, authMW *middleware.AuthMiddleware, auditMW gin.HandlerFunc) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(auditMW)

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// --- Auth ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
	}

	// --- Entity collections ---
	c.Students.Mount(api, models.CollectionStudents)
	c.Teachers.Mount(api, models.CollectionTeachers)
	c.Courses.Mount(api, models.CollectionCourses)
	c.ClassSchedules.Mount(api, models.CollectionClassSchedules)
	c.Assignments.Mount(api, models.CollectionAssignments)
	c.Attendance.Mount(api, models.CollectionAttendance)
	c.Transactions.Mount(api, models.CollectionTransactions)
	c.Announcements.Mount(api, models.CollectionAnnouncements)
	c.Books.Mount(api, models.CollectionBooks)
	c.Exams.Mount(api, models.CollectionExams)
	c.Grades.Mount(api, models.CollectionGrades)

	// Book issues: creation and return sequence two collections, so those two
	// routes go through the library controller instead of the generic CRUD.
	bookIssues := api.Group("/" + models.CollectionBookIssues)
	{
		bookIssues.GET("", c.BookIssues.List)
		bookIssues.GET("/:id", c.BookIssues.Get)
		bookIssues.POST("", c.Library.IssueBook)
		bookIssues.POST("/:id/return", c.Library.ReturnBook)
		bookIssues.PUT("/:id", c.BookIssues.Update)
		bookIssues.DELETE("/:id", c.BookIssues.Delete)
	}

	// --- Aggregations ---
	stats := api.Group("/stats")
	{
		stats.GET("/dashboard", c.Stats.Dashboard)
		stats.GET("/attendance", c.Stats.Attendance)
		stats.GET("/grades", c.Stats.Grades)
		stats.GET("/finance", c.Stats.Finance)
	}

	// --- Super-admin console ---
	superAdmin := api.Group("/super-admin")
	superAdmin.Use(authMW.JWTAuth(), authMW.RoleRequired(models.RoleSuperAdmin))
	{
		superAdmin.GET("/audit/logs", c.SuperAdmin.AuditLogs)

		superAdmin.GET("/backup", c.SuperAdmin.ListBackups)
		superAdmin.POST("/backup", c.SuperAdmin.CreateBackup)
		superAdmin.POST("/backup/:id/restore", c.SuperAdmin.RestoreBackup)

		superAdmin.GET("/roles", c.SuperAdmin.ListRoles)
		superAdmin.POST("/roles", c.SuperAdmin.CreateRole)
		superAdmin.PUT("/roles/:id", c.SuperAdmin.UpdateRole)
		superAdmin.DELETE("/roles/:id", c.SuperAdmin.DeleteRole)
	}
}
