package planValidator

import (
	"strings"

	"gymadmin/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreatePlanRequest is the validated plan-creation payload
type CreatePlanRequest struct {
	Name           string  `json:"name"`
	DurationMonths int     `json:"months"`
	Price          float64 `json:"price"`
}

// CreatePlan validates a membership-plan creation
func CreatePlan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreatePlanRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		if reqData.DurationMonths < 1 {
			errors["months"] = "Duration must be at least 1 month!"
		}

		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreatePlan", reqData)
		return c.Next()
	}
}

// UpdatePlanRequest is the validated plan-update payload. Pointer fields
// distinguish "omitted" from zero values.
type UpdatePlanRequest struct {
	Name           *string  `json:"name"`
	DurationMonths *int     `json:"months"`
	Price          *float64 `json:"price"`
}

// UpdatePlan validates a membership-plan edit
func UpdatePlan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdatePlanRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && strings.TrimSpace(*reqData.Name) == "" {
			errors["name"] = "Name cannot be empty!"
		}

		if reqData.DurationMonths != nil && *reqData.DurationMonths < 1 {
			errors["months"] = "Duration must be at least 1 month!"
		}

		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdatePlan", reqData)
		return c.Next()
	}
}
