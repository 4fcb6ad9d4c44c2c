package authController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"edumart/config"
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	authValidator "edumart/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-jwt-key",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/signup", authValidator.Signup(), Signup)
	app.Post("/auth/login", authValidator.Login(), Login)
	app.Get("/auth/profile", middleware.JWTMiddleware, GetProfile)
	app.Delete("/auth/account", middleware.JWTMiddleware, DeleteAccount)

	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]interface{}) *http.Response {
	t.Helper()

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSignupAndLogin(t *testing.T) {
	app, db := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret-password",
		"role":     models.RoleTeacher,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.NotEqual(t, "secret-password", user.Password, "password must be stored hashed")

	resp = postJSON(t, app, "/auth/login", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Data.Token)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app, _ := setupAuthTest(t)

	payload := map[string]interface{}{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret-password",
	}

	require.Equal(t, http.StatusCreated, postJSON(t, app, "/auth/signup", payload).StatusCode)

	resp := postJSON(t, app, "/auth/signup", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignupDefaultsToStudentRole(t *testing.T) {
	app, db := setupAuthTest(t)

	resp := postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Sam",
		"email":    "sam@example.com",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "sam@example.com").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := setupAuthTest(t)

	require.Equal(t, http.StatusCreated, postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret-password",
	}).StatusCode)

	resp := postJSON(t, app, "/auth/login", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteAccountBlockedForCourseOwner(t *testing.T) {
	app, db := setupAuthTest(t)

	require.Equal(t, http.StatusCreated, postJSON(t, app, "/auth/signup", map[string]interface{}{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret-password",
		"role":     models.RoleTeacher,
	}).StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)

	crs := courseModels.Course{Title: "Calculus", Category: courseModels.CategoryMathematics, Price: 0, Currency: "USD", OwnerID: user.ID}
	require.NoError(t, db.Create(&crs).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/auth/account", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Account survives untouched
	require.NoError(t, db.Where("email = ? AND is_deleted = ?", "ada@example.com", false).First(&user).Error)
}
