package planController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymadmin/config"
	"gymadmin/database"
	"gymadmin/membership"
	"gymadmin/middleware"
	"gymadmin/models"
	planRoutes "gymadmin/routers/planRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:             "3000",
		JWTKey:           "test-secret",
		SaltRound:        4,
		ExpiringSoonDays: 7,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MembershipPlan{},
		&models.Member{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	planRoutes.SetupPlanRoutes(app)

	return app, db
}

func seedAdmin(t *testing.T, db *gorm.DB) string {
	t.Helper()

	admin := models.User{
		Name:     "Test Admin",
		Email:    fmt.Sprintf("%s@test.local", t.Name()),
		Role:     "ADMIN",
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, url, token string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestCreatePlan(t *testing.T) {
	app, db := setupTestApp(t)
	token := seedAdmin(t, db)

	resp, parsed := doRequest(t, app, http.MethodPost, "/plans/", token, fiber.Map{
		"name":   "Quarterly",
		"months": 3,
		"price":  120.0,
	})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, parsed.Status)

	var plan models.MembershipPlan
	require.NoError(t, db.Where("name = ?", "Quarterly").First(&plan).Error)
	assert.Equal(t, 3, plan.DurationMonths)
	assert.Equal(t, 120.0, plan.Price)
}

func TestCreatePlanDuplicateNameAndDuration(t *testing.T) {
	app, db := setupTestApp(t)
	token := seedAdmin(t, db)

	require.NoError(t, db.Create(&models.MembershipPlan{Name: "Quarterly", DurationMonths: 3, Price: 120}).Error)

	resp, _ := doRequest(t, app, http.MethodPost, "/plans/", token, fiber.Map{
		"name":   "Quarterly",
		"months": 3,
		"price":  99.0,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Same name with a different duration is allowed
	resp, _ = doRequest(t, app, http.MethodPost, "/plans/", token, fiber.Map{
		"name":   "Quarterly",
		"months": 6,
		"price":  200.0,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCreatePlanValidation(t *testing.T) {
	app, db := setupTestApp(t)
	token := seedAdmin(t, db)

	resp, parsed := doRequest(t, app, http.MethodPost, "/plans/", token, fiber.Map{
		"name":   "",
		"months": 0,
		"price":  -5.0,
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var errs map[string]string
	require.NoError(t, json.Unmarshal(parsed.Data, &errs))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "months")
	assert.Contains(t, errs, "price")
}

func TestCreatePlanRequiresAdmin(t *testing.T) {
	app, db := setupTestApp(t)

	staff := models.User{Name: "Staff", Email: "staff@test.local", Role: "STAFF", Password: "x"}
	require.NoError(t, db.Create(&staff).Error)
	token, err := middleware.GenerateJWT(staff.ID, staff.Name, staff.Role, staff.Email)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, http.MethodPost, "/plans/", token, fiber.Map{
		"name":   "Monthly",
		"months": 1,
		"price":  50.0,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdatePlanLeavesMemberBillingUntouched(t *testing.T) {
	app, db := setupTestApp(t)
	token := seedAdmin(t, db)

	plan := models.MembershipPlan{Name: "Quarterly", DurationMonths: 3, Price: 120}
	require.NoError(t, db.Create(&plan).Error)

	paid := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	member := models.Member{
		MemberCode:         "GYM0001",
		Name:               "John Doe",
		Mobile:             "9876543210",
		MembershipPlanID:   plan.ID,
		PlanDurationMonths: plan.DurationMonths,
		LastPaymentDate:    paid,
		NextBillDate:       membership.NextBillDate(paid, plan.DurationMonths),
		Status:             models.MemberActive,
	}
	require.NoError(t, db.Create(&member).Error)

	resp, _ := doRequest(t, app, http.MethodPatch, fmt.Sprintf("/plans/%d", plan.ID), token, fiber.Map{
		"months": 12,
		"price":  400.0,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var afterPlan models.MembershipPlan
	require.NoError(t, db.First(&afterPlan, plan.ID).Error)
	assert.Equal(t, 12, afterPlan.DurationMonths)

	// The member keeps the snapshot taken at registration
	var afterMember models.Member
	require.NoError(t, db.First(&afterMember, member.ID).Error)
	assert.Equal(t, 3, afterMember.PlanDurationMonths)
	assert.Equal(t, "2024-04-15", afterMember.NextBillDate.Format("2006-01-02"))
}

func TestUpdatePlanDuplicateCombination(t *testing.T) {
	app, db := setupTestApp(t)
	token := seedAdmin(t, db)

	require.NoError(t, db.Create(&models.MembershipPlan{Name: "Quarterly", DurationMonths: 3, Price: 120}).Error)
	other := models.MembershipPlan{Name: "Quarterly", DurationMonths: 6, Price: 200}
	require.NoError(t, db.Create(&other).Error)

	resp, _ := doRequest(t, app, http.MethodPatch, fmt.Sprintf("/plans/%d", other.ID), token, fiber.Map{
		"months": 3,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestListPlansOrderingAndSoftDelete(t *testing.T) {
	app, db := setupTestApp(t)
	token := seedAdmin(t, db)

	require.NoError(t, db.Create(&models.MembershipPlan{Name: "Yearly", DurationMonths: 12, Price: 400}).Error)
	require.NoError(t, db.Create(&models.MembershipPlan{Name: "Monthly", DurationMonths: 1, Price: 50}).Error)
	gone := models.MembershipPlan{Name: "Retired", DurationMonths: 6, Price: 1}
	require.NoError(t, db.Create(&gone).Error)

	resp, _ := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/plans/%d", gone.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, parsed := doRequest(t, app, http.MethodGet, "/plans/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var plans []models.MembershipPlan
	require.NoError(t, json.Unmarshal(parsed.Data, &plans))
	require.Len(t, plans, 2)
	assert.Equal(t, "Monthly", plans[0].Name)
	assert.Equal(t, "Yearly", plans[1].Name)
}
