package memberController

import (
	"log"
	"math"
	"strings"
	"time"

	"gymadmin/config"
	"gymadmin/database"
	"gymadmin/membership"
	"gymadmin/middleware"
	"gymadmin/models"
	memberValidator "gymadmin/validators/member"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MemberWithBilling decorates a member row with its read-time billing
// classification.
type MemberWithBilling struct {
	models.Member
	Billing string `json:"billing"`
}

func withBilling(m models.Member, today time.Time) MemberWithBilling {
	return MemberWithBilling{
		Member:  m,
		Billing: membership.Classify(m.NextBillDate, today, config.AppConfig.ExpiringSoonDays),
	}
}

// applyFilter narrows the query to one filter category. The billing
// categories (active/expiring/expired) read only the next_bill_date axis;
// "inactive" reads only the administrative status axis.
func applyFilter(query *gorm.DB, filter string, today time.Time) *gorm.DB {
	window := today.AddDate(0, 0, config.AppConfig.ExpiringSoonDays)

	switch filter {
	case "active":
		return query.Where("next_bill_date > ?", window)
	case "expiring":
		return query.Where("next_bill_date > ? AND next_bill_date <= ?", today, window)
	case "expired":
		return query.Where("next_bill_date <= ?", today)
	case "inactive":
		return query.Where("status = ?", models.MemberInactive)
	default: // all
		return query
	}
}

var validFilters = map[string]bool{
	"all": true, "active": true, "expiring": true, "expired": true, "inactive": true,
}

// ListMembers returns a page of members matching a filter category and an
// optional case-insensitive search over name/email/mobile.
func ListMembers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search", "")
	filter := c.Query("filter", "all")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if !validFilters[filter] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid filter!", nil)
	}

	offset := (page - 1) * limit
	today := membership.StartOfDay(time.Now())

	query := database.Database.Db.Model(&models.Member{}).Where("is_deleted = ?", false)
	query = applyFilter(query, filter, today)

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR mobile LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	var members []models.Member
	if err := query.
		Preload("MembershipPlan").
		Offset(offset).Limit(limit).
		Order("created_at desc, id desc").
		Find(&members).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	response := make([]MemberWithBilling, 0, len(members))
	for _, m := range members {
		response = append(response, withBilling(m, today))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Members fetched!", fiber.Map{
		"members": response,
		"pagination": fiber.Map{
			"total":       total,
			"page":        page,
			"limit":       limit,
			"totalPages":  totalPages,
			"hasNextPage": page < totalPages,
			"hasPrevPage": page > 1,
		},
	})
}

// GetAnalytics returns the dashboard member counts
func GetAnalytics(c *fiber.Ctx) error {
	db := database.Database.Db
	today := membership.StartOfDay(time.Now())
	window := today.AddDate(0, 0, config.AppConfig.ExpiringSoonDays)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	base := func() *gorm.DB {
		return db.Model(&models.Member{}).Where("is_deleted = ?", false)
	}

	var total, thisMonth, active, expiring, expired, inactive int64
	base().Count(&total)
	base().Where("created_at >= ?", firstOfMonth).Count(&thisMonth)
	base().Where("next_bill_date > ?", window).Count(&active)
	base().Where("next_bill_date > ? AND next_bill_date <= ?", today, window).Count(&expiring)
	base().Where("next_bill_date <= ?", today).Count(&expired)
	base().Where("status = ?", models.MemberInactive).Count(&inactive)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched!", fiber.Map{
		"totalMembers":          total,
		"totalMembersThisMonth": thisMonth,
		"activeMembers":         active,
		"expiringSoon":          expiring,
		"expiredMembers":        expired,
		"inactiveMembers":       inactive,
	})
}

// RegisterMember creates a member. The next bill date is derived immediately
// from the payment date and the selected plan's duration, and the duration is
// frozen on the member row.
func RegisterMember(c *fiber.Ctx) error {
	reqData := c.Locals("validatedRegister").(*memberValidator.RegisterRequest)

	db := database.Database.Db

	var plan models.MembershipPlan
	if err := db.Where("id = ? AND is_deleted = ?", reqData.MembershipPlanID, false).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Membership plan not found!", nil)
	}

	// Member code must be unique
	if err := db.Where("member_code = ? AND is_deleted = ?", reqData.MemberCode, false).
		First(&models.Member{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Member ID is already in use!", nil)
	}

	paymentDate := membership.StartOfDay(reqData.PaymentDate)

	newMember := models.Member{
		MemberCode:         reqData.MemberCode,
		Name:               reqData.Name,
		Mobile:             reqData.Mobile,
		Email:              reqData.Email,
		ProfilePic:         reqData.ProfilePic,
		MembershipPlanID:   plan.ID,
		PlanDurationMonths: plan.DurationMonths,
		LastPaymentDate:    paymentDate,
		NextBillDate:       membership.NextBillDate(paymentDate, plan.DurationMonths),
		Status:             models.MemberActive,
	}

	if err := db.Create(&newMember).Error; err != nil {
		log.Printf("Error saving member to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register member!", nil)
	}

	newMember.MembershipPlan = plan

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Member registered successfully.",
		withBilling(newMember, membership.StartOfDay(time.Now())))
}

// GetMemberByID returns a single member with plan details and billing state
func GetMemberByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	var member models.Member
	if err := database.Database.Db.
		Preload("MembershipPlan").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member fetched!",
		withBilling(member, membership.StartOfDay(time.Now())))
}

// EditMemberDetails updates identity fields only. Billing fields are owned by
// registration and renewal and never change here.
func EditMemberDetails(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	reqData := c.Locals("validatedEdit").(*memberValidator.EditRequest)

	db := database.Database.Db

	var member models.Member
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	if reqData.MemberCode != "" && reqData.MemberCode != member.MemberCode {
		if err := db.Where("member_code = ? AND is_deleted = ? AND id <> ?",
			reqData.MemberCode, false, member.ID).First(&models.Member{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Member ID is already in use!", nil)
		}
		member.MemberCode = reqData.MemberCode
	}
	if reqData.Name != "" {
		member.Name = reqData.Name
	}
	if reqData.Mobile != "" {
		member.Mobile = reqData.Mobile
	}
	if reqData.Email != "" {
		member.Email = reqData.Email
	}
	if reqData.ProfilePic != "" {
		member.ProfilePic = reqData.ProfilePic
	}

	if err := db.Save(&member).Error; err != nil {
		log.Printf("Error updating member %d: %v", member.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update member details!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member details updated.",
		withBilling(member, membership.StartOfDay(time.Now())))
}

// DeleteMember removes a member. The delete is immediate and irreversible
// from the API's point of view.
func DeleteMember(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	// Verify admin role
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}
	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid member id!", nil)
	}

	var member models.Member
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&member).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Member not found!", nil)
	}

	member.IsDeleted = true
	if err := database.Database.Db.Save(&member).Error; err != nil {
		log.Printf("Error deleting member %d: %v", member.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete member!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Member deleted.", nil)
}
