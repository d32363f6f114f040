package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spatrax/spatrax-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC          *usecase.UserUseCase
	EstablishmentUC *usecase.EstablishmentUseCase
	TeamUC          *usecase.TeamUseCase
	LogUC           *usecase.LogUseCase
	ExportUC        *usecase.ExportUseCase
	InviteUC        *usecase.InviteUseCase
	DashboardUC     *usecase.DashboardUseCase
	WebhookHandler  *WebhookHandler
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Webhook del proveedor de identidad (público, firma Svix)
	api.Post("/webhooks/identity", deps.WebhookHandler.HandleIdentityEvent)

	// Invitaciones: lectura pública para la página de sign-up
	inviteHandler := NewInviteHandler(deps.InviteUC)
	api.Get("/invites/:id", inviteHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuario autenticado
	userHandler := NewUserHandler(deps.UserUC, deps.TeamUC)
	protected.Get("/me", userHandler.Me)
	protected.Put("/me/signature", userHandler.UpdateSignature)

	// Establecimientos
	establishments := protected.Group("/establishments")
	establishmentHandler := NewEstablishmentHandler(deps.EstablishmentUC)
	establishments.Get("/mine", establishmentHandler.Mine)
	establishments.Post("/", establishmentHandler.Create)
	establishments.Put("/:id", establishmentHandler.Edit)

	// Equipo
	team := protected.Group("/team")
	teamHandler := NewTeamHandler(deps.TeamUC)
	team.Get("/", teamHandler.List)
	team.Post("/", teamHandler.Create)
	team.Get("/:id", teamHandler.GetByID)
	team.Put("/:id", teamHandler.Edit)
	team.Put("/:id/signature", teamHandler.EditSignature)

	// Logs de limpieza y exportación
	logs := protected.Group("/logs")
	logHandler := NewLogHandler(deps.LogUC, deps.ExportUC)
	logs.Get("/recent", logHandler.Recent)
	logs.Get("/search", logHandler.Search)
	logs.Post("/", logHandler.Create)
	logs.Get("/export/csv", logHandler.ExportCSV)
	logs.Get("/export/pdf", logHandler.ExportPDF)

	// Invitaciones (alta y envío protegidos)
	invites := protected.Group("/invites")
	invites.Post("/", inviteHandler.Create)
	invites.Post("/:id/send", inviteHandler.SendEmail)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
