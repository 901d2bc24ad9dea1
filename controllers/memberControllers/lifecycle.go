package memberController

import (
	"log"
	"time"

	"gymadmin/database"
	"gymadmin/membership"
	"gymadmin/middleware"
	"gymadmin/models"
	memberValidator "gymadmin/validators/member"

	"github.com/gofiber/fiber/v2"
)

// RenewMembership moves a member onto a plan for a fresh payment cycle.
// Renewal is rejected for administratively inactive members and leaves the
// record untouched on every failure path.
func RenewMembership(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	reqData := c.Locals("validatedRenew").(*memberValidator.RenewRequest)

	db := database.Database.Db

	var member models.Member
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	if member.Status != models.MemberActive {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot renew an inactive member!", nil)
	}

	var plan models.MembershipPlan
	if err := db.Where("id = ? AND is_deleted = ?", reqData.MembershipPlanID, false).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Membership plan not found!", nil)
	}

	billDate := membership.StartOfDay(reqData.BillDate)

	member.MembershipPlanID = plan.ID
	member.PlanDurationMonths = plan.DurationMonths
	member.LastPaymentDate = billDate
	member.NextBillDate = membership.NextBillDate(billDate, plan.DurationMonths)
	member.ReminderSent = false

	if err := db.Save(&member).Error; err != nil {
		log.Printf("Error renewing member %d: %v", member.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to renew membership!", nil)
	}

	member.MembershipPlan = plan

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Membership renewed.",
		withBilling(member, membership.StartOfDay(time.Now())))
}

// UpdateMemberStatus flips the administrative status flag. It is a pure
// state flip: billing dates are untouched and an expired member can still be
// toggled for presence tracking.
func UpdateMemberStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	reqData := c.Locals("validatedStatus").(*memberValidator.StatusRequest)

	db := database.Database.Db

	var member models.Member
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	member.Status = reqData.Status
	if err := db.Save(&member).Error; err != nil {
		log.Printf("Error updating status for member %d: %v", member.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update member status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member status updated.",
		withBilling(member, membership.StartOfDay(time.Now())))
}
