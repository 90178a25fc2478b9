package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seller-analytics/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Reports   reportService
	Log       *logger.Logger
	JWTSecret string
	AppName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Rutas protegidas (Bearer Token + rol conocido)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(RoleAdmin, RoleSeller, RoleAnalyst))

	analyticsHandler := NewAnalyticsHandler(deps.Reports, deps.Log)
	analyticsGroup := protected.Group("/analytics")
	analyticsGroup.Get("/report", analyticsHandler.GetReport)
	analyticsGroup.Get("/report.pdf", analyticsHandler.ExportPDF)
}
