package planRoutes

import (
	planControllers "gymadmin/controllers/planControllers"
	"gymadmin/middleware"
	planValidators "gymadmin/validators/plan"

	"github.com/gofiber/fiber/v2"
)

func SetupPlanRoutes(app *fiber.App) {
	planGroup := app.Group("/plans", middleware.JWTMiddleware)

	planGroup.Get("/", planControllers.ListPlans)
	planGroup.Post("/", planValidators.CreatePlan(), planControllers.CreatePlan)
	planGroup.Patch("/:id", planValidators.UpdatePlan(), planControllers.UpdatePlan)
	planGroup.Delete("/:id", planControllers.DeletePlan)
}
