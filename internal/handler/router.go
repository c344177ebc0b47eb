package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/escolalink/escola-api/internal/middleware"
	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/service"
)

// Handlers groups every HTTP handler for route registration.
type Handlers struct {
	Auth          *AuthHandler
	Students      *StudentHandler
	Teachers      *TeacherHandler
	Classes       *ClassHandler
	Subjects      *SubjectHandler
	Calendar      *CalendarHandler
	Finance       *FinanceHandler
	Library       *LibraryHandler
	Announcements *AnnouncementHandler
	Records       *RecordsHandler
	Users         *UserHandler
	Dashboard     *DashboardHandler
	Exports       *ExportHandler
	Metrics       *MetricsHandler
}

// Routes registers every endpoint on the API group. Authentication is
// required for everything but login; write access is restricted per role.
func Routes(api *gin.RouterGroup, h Handlers, auth *service.AuthService) {
	api.POST("/auth/login", h.Auth.Login)
	// Archive downloads are authorised by their signed token alone.
	api.GET("/exports/archive/:token", h.Exports.Archived)
	// The noticeboard is public. Anonymous callers only see general
	// notices; a bearer token widens the listing to every audience.
	api.GET("/announcements", middleware.OptionalJWT(auth), h.Announcements.List)

	protected := api.Group("")
	protected.Use(middleware.JWT(auth))

	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)
	protected.GET("/dashboard", h.Dashboard.Get)

	admin := middleware.RequireRoles(models.RoleAdmin, models.RoleDirection)
	office := middleware.RequireRoles(models.RoleAdmin, models.RoleDirection, models.RoleSecretariat)
	academics := middleware.RequireRoles(models.RoleAdmin, models.RoleDirection, models.RoleSecretariat, models.RoleTeacher)

	students := protected.Group("/students")
	{
		students.GET("", h.Students.List)
		students.GET("/:id", h.Students.Get)
		students.GET("/:id/grades", h.Students.Grades)
		students.PUT("/:id/grades", academics, h.Students.UpsertGrades)
		students.GET("/:id/health", office, h.Students.HealthRecords)
		students.POST("", office, h.Students.Create)
		students.PUT("/:id", office, h.Students.Update)
		students.DELETE("/:id", office, h.Students.Deactivate)
	}

	teachers := protected.Group("/teachers")
	{
		teachers.GET("", h.Teachers.List)
		teachers.GET("/:id", h.Teachers.Get)
		teachers.POST("", admin, h.Teachers.Create)
		teachers.PUT("/:id", admin, h.Teachers.Update)
		teachers.DELETE("/:id", admin, h.Teachers.Delete)
	}

	staff := protected.Group("/staff")
	{
		staff.GET("", office, h.Teachers.ListStaff)
		staff.POST("", admin, h.Teachers.CreateStaff)
		staff.PUT("/:id", admin, h.Teachers.UpdateStaff)
		staff.DELETE("/:id", admin, h.Teachers.DeleteStaff)
	}

	classes := protected.Group("/classes")
	{
		classes.GET("", h.Classes.List)
		classes.GET("/:id", h.Classes.Get)
		classes.GET("/:id/grades", academics, h.Classes.GradeSheet)
		classes.POST("", admin, h.Classes.Create)
		classes.PUT("/:id", admin, h.Classes.Update)
		classes.DELETE("/:id", admin, h.Classes.Delete)
	}

	subjects := protected.Group("/subjects")
	{
		subjects.GET("", h.Subjects.List)
		subjects.POST("", admin, h.Subjects.Create)
		subjects.PUT("/:id", admin, h.Subjects.Update)
		subjects.DELETE("/:id", admin, h.Subjects.Delete)
	}

	curriculum := protected.Group("/curriculum")
	{
		curriculum.POST("", admin, h.Subjects.Assign)
		curriculum.PUT("/:id", admin, h.Subjects.Reassign)
		curriculum.DELETE("/:id", admin, h.Subjects.Unassign)
	}

	calendar := protected.Group("/calendar")
	{
		calendar.GET("/events", h.Calendar.List)
		calendar.GET("/upcoming", h.Calendar.Upcoming)
		calendar.POST("/events", office, h.Calendar.Create)
		calendar.PUT("/events/:id", office, h.Calendar.Update)
		calendar.DELETE("/events/:id", office, h.Calendar.Delete)
	}

	finance := protected.Group("/finance", office)
	{
		finance.GET("/transactions", h.Finance.Transactions)
		finance.POST("/transactions", h.Finance.CreateTransaction)
		finance.DELETE("/transactions/:id", h.Finance.DeleteTransaction)
		finance.GET("/categories", h.Finance.Categories)
		finance.POST("/categories", h.Finance.CreateCategory)
		finance.DELETE("/categories/:id", h.Finance.DeleteCategory)
		finance.GET("/tuition", h.Finance.Tuition)
		finance.POST("/tuition", h.Finance.CreateTuition)
		finance.POST("/tuition/:id/settle", h.Finance.SettleTuition)
		finance.GET("/scholarships", h.Finance.Scholarships)
		finance.POST("/scholarships", h.Finance.CreateScholarship)
		finance.DELETE("/scholarships/:id", h.Finance.DeleteScholarship)
		finance.GET("/grants", h.Finance.Grants)
		finance.POST("/grants", h.Finance.CreateGrant)
		finance.DELETE("/grants/:id", h.Finance.DeleteGrant)
		finance.GET("/summary", h.Finance.Summary)
	}

	library := protected.Group("/library", office)
	{
		library.GET("/books", h.Library.Books)
		library.POST("/books", h.Library.CreateBook)
		library.PUT("/books/:id", h.Library.UpdateBook)
		library.DELETE("/books/:id", h.Library.DeleteBook)
		library.GET("/loans", h.Library.Loans)
		library.GET("/loans/overdue", h.Library.Overdue)
		library.POST("/loans", h.Library.Lend)
		library.POST("/loans/:id/return", h.Library.Return)
	}

	announcements := protected.Group("/announcements")
	{
		announcements.POST("", office, h.Announcements.Create)
		announcements.PUT("/:id", office, h.Announcements.Update)
		announcements.DELETE("/:id", office, h.Announcements.Delete)
	}

	records := protected.Group("/records")
	{
		records.POST("/health", office, h.Records.CreateHealthRecord)
		records.PUT("/health/:id", office, h.Records.UpdateHealthRecord)
		records.DELETE("/health/:id", office, h.Records.DeleteHealthRecord)
		records.GET("/lesson-plans", academics, h.Records.LessonPlans)
		records.POST("/lesson-plans", academics, h.Records.CreateLessonPlan)
		records.DELETE("/lesson-plans/:id", academics, h.Records.DeleteLessonPlan)
	}

	settings := protected.Group("/settings")
	{
		settings.GET("", h.Records.Settings)
		settings.PUT("", admin, h.Records.UpdateSettings)
	}

	users := protected.Group("/users")
	{
		users.GET("", admin, h.Users.List)
		// Account owners may read their own record.
		users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), string(models.RoleDirection), middleware.AllowSelf), h.Users.Get)
		users.POST("", admin, h.Users.Create)
		users.PUT("/:id", admin, h.Users.Update)
		users.DELETE("/:id", admin, h.Users.Delete)
	}

	exports := protected.Group("/exports", academics)
	{
		exports.GET("/classes/:id/grades", h.Exports.GradeSheet)
		exports.GET("/finance", office, h.Exports.FinanceStatement)
	}

	protected.GET("/system/metrics", admin, h.Metrics.Snapshot)
}
