package planController

import (
	"log"

	"gymadmin/database"
	"gymadmin/middleware"
	"gymadmin/models"
	planValidator "gymadmin/validators/plan"

	"github.com/gofiber/fiber/v2"
)

// requireAdmin loads the requesting user and checks the ADMIN role
func requireAdmin(c *fiber.Ctx) (bool, error) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return false, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}
	if user.Role != "ADMIN" {
		return false, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}
	return true, nil
}

// ListPlans returns all non-deleted membership plans
func ListPlans(c *fiber.Ctx) error {
	var plans []models.MembershipPlan
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("duration_months asc, price asc").
		Find(&plans).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plans!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched!", plans)
}

// CreatePlan creates a membership plan. The name+duration combination must be
// unique among non-deleted plans.
func CreatePlan(c *fiber.Ctx) error {
	if ok, resp := requireAdmin(c); !ok {
		return resp
	}

	reqData := c.Locals("validatedCreatePlan").(*planValidator.CreatePlanRequest)

	db := database.Database.Db

	if err := db.Where("name = ? AND duration_months = ? AND is_deleted = ?",
		reqData.Name, reqData.DurationMonths, false).First(&models.MembershipPlan{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A plan with this name and duration already exists!", nil)
	}

	newPlan := models.MembershipPlan{
		Name:           reqData.Name,
		DurationMonths: reqData.DurationMonths,
		Price:          reqData.Price,
	}

	if err := db.Create(&newPlan).Error; err != nil {
		log.Printf("Error saving plan to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Plan created successfully.", newPlan)
}

// UpdatePlan edits a plan. Members already on the plan keep the duration
// snapshot taken at their last renewal; nothing is recomputed here.
func UpdatePlan(c *fiber.Ctx) error {
	if ok, resp := requireAdmin(c); !ok {
		return resp
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid plan id!", nil)
	}

	reqData := c.Locals("validatedUpdatePlan").(*planValidator.UpdatePlanRequest)

	db := database.Database.Db

	var plan models.MembershipPlan
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan not found!", nil)
	}

	name := plan.Name
	months := plan.DurationMonths
	if reqData.Name != nil {
		name = *reqData.Name
	}
	if reqData.DurationMonths != nil {
		months = *reqData.DurationMonths
	}

	// Keep name+duration unique after the edit too
	if name != plan.Name || months != plan.DurationMonths {
		if err := db.Where("name = ? AND duration_months = ? AND is_deleted = ? AND id <> ?",
			name, months, false, plan.ID).First(&models.MembershipPlan{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A plan with this name and duration already exists!", nil)
		}
	}

	plan.Name = name
	plan.DurationMonths = months
	if reqData.Price != nil {
		plan.Price = *reqData.Price
	}

	if err := db.Save(&plan).Error; err != nil {
		log.Printf("Error updating plan %d: %v", plan.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan updated.", plan)
}

// DeletePlan removes a plan. Members on the plan are untouched: their frozen
// duration snapshot keeps their billing dates valid.
func DeletePlan(c *fiber.Ctx) error {
	if ok, resp := requireAdmin(c); !ok {
		return resp
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid plan id!", nil)
	}

	db := database.Database.Db

	var plan models.MembershipPlan
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan not found!", nil)
	}

	plan.IsDeleted = true
	if err := db.Save(&plan).Error; err != nil {
		log.Printf("Error deleting plan %d: %v", plan.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan deleted.", nil)
}
