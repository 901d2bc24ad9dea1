package memberValidator

import (
	"regexp"
	"strings"
	"time"

	"gymadmin/membership"
	"gymadmin/middleware"
	"gymadmin/models"

	"github.com/gofiber/fiber/v2"
)

// Dates travel as "2006-01-02" strings on the wire
const dateLayout = "2006-01-02"

func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

func isValidMobile(mobile string) bool {
	re := regexp.MustCompile(`^\d{10}$`)
	return re.MatchString(mobile)
}

// RegisterRequest is the validated registration payload passed via c.Locals.
// PaymentDate holds the parsed LastPaymentDate, defaulted to today when the
// field is omitted.
type RegisterRequest struct {
	MemberCode       string `json:"memberId"`
	Name             string `json:"name"`
	Mobile           string `json:"mobile"`
	Email            string `json:"email"`
	ProfilePic       string `json:"profilePic"`
	MembershipPlanID uint   `json:"membershipPlanId"`
	LastPaymentDate  string `json:"lastPaymentDate"`

	PaymentDate time.Time `json:"-"`
}

// RegisterMember validates a new-member submission. All required fields are
// checked before any record is created; failures come back as a field-keyed
// error map.
func RegisterMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.MemberCode) == "" {
			errors["memberId"] = "Member ID is required!"
		}

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		if strings.TrimSpace(reqData.Mobile) == "" {
			errors["mobile"] = "Mobile number is required!"
		} else if !isValidMobile(reqData.Mobile) {
			errors["mobile"] = "Invalid mobile number!"
		}

		// Email is optional, validate only when provided
		if reqData.Email != "" && !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if reqData.MembershipPlanID == 0 {
			errors["membershipPlanId"] = "Membership plan is required!"
		}

		// Payment date defaults to today when omitted
		reqData.PaymentDate = membership.StartOfDay(time.Now())
		if reqData.LastPaymentDate != "" {
			parsed, err := time.Parse(dateLayout, reqData.LastPaymentDate)
			if err != nil {
				errors["lastPaymentDate"] = "Invalid date, expected YYYY-MM-DD!"
			} else {
				reqData.PaymentDate = parsed
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

// EditRequest is the validated member-edit payload. Empty fields are left
// unchanged by the controller; formats are checked only for supplied values.
type EditRequest struct {
	MemberCode string `json:"memberId"`
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
}

// EditMember validates a member-details edit
func EditMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EditRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Mobile != "" && !isValidMobile(reqData.Mobile) {
			errors["mobile"] = "Invalid mobile number!"
		}

		if reqData.Email != "" && !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEdit", reqData)
		return c.Next()
	}
}

// RenewRequest is the validated renewal payload. BillDate holds the parsed
// CurrentBillDate, defaulted to today when the field is omitted.
type RenewRequest struct {
	MembershipPlanID uint   `json:"membershipId"`
	CurrentBillDate  string `json:"currentBillDate"`

	BillDate time.Time `json:"-"`
}

// RenewMember validates a renewal submission
func RenewMember() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RenewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.MembershipPlanID == 0 {
			errors["membershipId"] = "Membership plan is required!"
		}

		reqData.BillDate = membership.StartOfDay(time.Now())
		if reqData.CurrentBillDate != "" {
			parsed, err := time.Parse(dateLayout, reqData.CurrentBillDate)
			if err != nil {
				errors["currentBillDate"] = "Invalid date, expected YYYY-MM-DD!"
			} else {
				reqData.BillDate = parsed
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRenew", reqData)
		return c.Next()
	}
}

// StatusRequest is the validated status-toggle payload
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus validates a status toggle. Accepts the status in any case and
// normalizes it to the stored enum value.
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(StatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))
		if reqData.Status != models.MemberActive && reqData.Status != models.MemberInactive {
			errors["status"] = "Status must be ACTIVE or INACTIVE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}
