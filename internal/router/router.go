package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thilanga24/dropout-prevention-api/internal/config"
	"github.com/thilanga24/dropout-prevention-api/internal/handler"
	"github.com/thilanga24/dropout-prevention-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler      *handler.StudentHandler
	AgentHandler        *handler.AgentHandler
	OverviewHandler     *handler.OverviewHandler
	InterventionHandler *handler.InterventionHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware)
		deps.StudentHandler.Register(students)

		if deps.InterventionHandler != nil {
			deps.InterventionHandler.RegisterStudentRoutes(students)
		}
	}

	if deps.InterventionHandler != nil {
		interventions := api.Group("/interventions", jwtMiddleware)
		deps.InterventionHandler.Register(interventions)
	}

	if deps.AgentHandler != nil {
		agent := api.Group("/agent", jwtMiddleware)
		deps.AgentHandler.Register(agent)
	}

	if deps.OverviewHandler != nil {
		risk := api.Group("/risk")
		deps.OverviewHandler.Register(risk)
	}
}
