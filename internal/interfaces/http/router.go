package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hrportal-api/internal/application/attendance"
	"github.com/jhoicas/hrportal-api/internal/application/auth"
	"github.com/jhoicas/hrportal-api/internal/application/leave"
	"github.com/jhoicas/hrportal-api/internal/application/notification"
	"github.com/jhoicas/hrportal-api/internal/application/report"
	"github.com/jhoicas/hrportal-api/internal/application/usecase"
	"github.com/jhoicas/hrportal-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ReportUC     *report.ReportUseCase
	Attendance   *attendance.Service
	LeaveUC      *leave.UseCase
	ResourceUC   *usecase.ResourceUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	Notification *notification.Service
	Exporters    Exporters
	Codec        *jwt.Codec
	Metrics      *Metrics // opcional
	ServiceName  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	anyScope := AuthMiddleware(deps.Codec, jwt.ScopeAPI, jwt.ScopeUser)
	apiScope := AuthMiddleware(deps.Codec, jwt.ScopeAPI)
	userScope := AuthMiddleware(deps.Codec, jwt.ScopeUser)

	// Auth (público salvo /userAuth)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/apiAuth", authHandler.APIAuth)
	app.Post("/userAuth", APITokenGate(deps.Codec), authHandler.UserAuth)
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	// Reporte genérico
	reportHandler := NewReportHandler(deps.ReportUC)
	app.Post("/reports", anyScope, reportHandler.Run)
	app.Get("/meta", anyScope, reportHandler.Meta)

	// OTP y correo
	notifHandler := NewNotificationHandler(deps.Notification)
	app.Post("/sendOtp", notifHandler.SendOTP)
	app.Post("/verifyOtp", notifHandler.VerifyOTP)
	app.Post("/send-mail", apiScope, notifHandler.SendMail)

	api := app.Group("/api")
	api.Get("/me", userScope, authHandler.Me)

	// Rutas protegidas (cualquier alcance)
	protected := api.Group("/", anyScope)

	reports := protected.Group("/reports")
	attendanceHandler := NewAttendanceHandler(deps.Attendance, deps.Exporters)
	reports.Get("/absence", attendanceHandler.Absence)
	reports.Get("/overtime", attendanceHandler.Overtime)
	reports.Get("/headcount", attendanceHandler.Headcount)
	reports.Get("/punches", attendanceHandler.Punches)
	reports.Post("/query", attendanceHandler.Query)

	leaves := protected.Group("/leave-allocations")
	leaveHandler := NewLeaveHandler(deps.LeaveUC)
	leaves.Post("/upload", leaveHandler.Upload)
	leaves.Get("/template", leaveHandler.Template)

	resourceHandler := NewResourceHandler(deps.ResourceUC, deps.EmployeeUC)
	protected.Get("/employees/export", resourceHandler.ExportEmployees)
	resources := protected.Group("/resources")
	resources.Get("/:doctype", resourceHandler.List)
	resources.Post("/:doctype", resourceHandler.Create)
	resources.Get("/:doctype/:name", resourceHandler.Get)
	resources.Put("/:doctype/:name", resourceHandler.Update)
	resources.Delete("/:doctype/:name", resourceHandler.Delete)
}
