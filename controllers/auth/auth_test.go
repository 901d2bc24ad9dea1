package authController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymadmin/config"
	"gymadmin/database"
	"gymadmin/models"
	authRoutes "gymadmin/routers/authRoutes"

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
		&models.OTP{},
		&models.LoginTracking{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)

	return app, db
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

func signup(t *testing.T, app *fiber.App, email, password string) {
	t.Helper()

	resp, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name":     "Owner",
		"email":    email,
		"mobile":   "9876543210",
		"password": password,
		"gymName":  "Iron Temple",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestSignupAndLogin(t *testing.T) {
	app, db := setupTestApp(t)

	signup(t, app, "owner@gym.local", "supersecret")

	var user models.User
	require.NoError(t, db.Where("email = ?", "owner@gym.local").First(&user).Error)
	assert.Equal(t, "ADMIN", user.Role)
	assert.NotEqual(t, "supersecret", user.Password)

	resp, parsed := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "owner@gym.local",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &data))
	assert.NotEmpty(t, data.Token)

	// Login is recorded in the audit trail
	var count int64
	db.Model(&models.LoginTracking{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app, _ := setupTestApp(t)

	signup(t, app, "owner@gym.local", "supersecret")

	resp, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name":     "Other Owner",
		"email":    "owner@gym.local",
		"mobile":   "9876500000",
		"password": "anothersecret",
		"gymName":  "Other Gym",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, parsed := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name":     "Jo",
		"email":    "not-an-email",
		"mobile":   "12345",
		"password": "short",
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var errs map[string]string
	require.NoError(t, json.Unmarshal(parsed.Data, &errs))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "mobile")
	assert.Contains(t, errs, "password")
}

func TestLoginLockoutAfterThreeFailures(t *testing.T) {
	app, db := setupTestApp(t)

	signup(t, app, "owner@gym.local", "supersecret")

	for i := 0; i < 3; i++ {
		resp, _ := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
			"email":    "owner@gym.local",
			"password": "wrongpassword",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}

	var user models.User
	require.NoError(t, db.Where("email = ?", "owner@gym.local").First(&user).Error)
	assert.True(t, user.IsBlocked)
	require.NotNil(t, user.BlockedUntil)

	// Even the correct password is rejected while blocked
	resp, parsed := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "owner@gym.local",
		"password": "supersecret",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, parsed.Message, "blocked")
}

func TestLoginHistoryRequiresToken(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doRequest(t, app, http.MethodGet, "/auth/login/history", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginHistoryList(t *testing.T) {
	app, _ := setupTestApp(t)

	signup(t, app, "owner@gym.local", "supersecret")

	_, parsed := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email":    "owner@gym.local",
		"password": "supersecret",
	})
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &data))

	resp, parsed := doRequest(t, app, http.MethodGet, "/auth/login/history", data.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list struct {
		History []models.LoginTracking `json:"history"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &list))
	assert.Len(t, list.History, 1)
}
