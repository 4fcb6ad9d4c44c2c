package paymentController

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
	"edumart/services"
	paymentValidator "edumart/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPaymentTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:           "test-jwt-key",
		SaltRound:        4,
		FrontendDomain:   "http://localhost:5173",
		GatewaySecretKey: "sk_test_123",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/payment/currencies", GetCurrencies)
	app.Post("/payment/checkout-session", middleware.JWTMiddleware, paymentValidator.CheckoutSession(), CreateCheckoutSession)
	app.Get("/payment/transactions", middleware.JWTMiddleware, paymentValidator.TransactionList(), GetTransactions)
	app.Get("/payment/transaction/:transaction_id", middleware.JWTMiddleware, GetTransactionDetail)

	return app, db
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

func checkoutRequest(t *testing.T, app *fiber.App, token string, courseID uint) *http.Response {
	t.Helper()

	body, _ := json.Marshal(map[string]interface{}{"course_id": courseID})
	req := httptest.NewRequest(http.MethodPost, "/payment/checkout-session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestGetCurrencies(t *testing.T) {
	app, _ := setupPaymentTest(t)

	req := httptest.NewRequest(http.MethodGet, "/payment/currencies", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []courseModels.CurrencyInfo `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, len(courseModels.AvailableCurrencies))
	assert.Equal(t, courseModels.Currency("USD"), body.Data[0].Code)
}

func TestCreateCheckoutSessionEndpoint(t *testing.T) {
	gatewayCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gatewayCalls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "cs_test_9",
			"url": "https://checkout.example.com/cs_test_9",
		})
	}))
	defer server.Close()

	app, db := setupPaymentTest(t)
	config.AppConfig.GatewayAPIURL = server.URL

	student, crs := seedStudentAndCourse(t, db, 49.99)
	token := authToken(t, student)

	resp := checkoutRequest(t, app, token, crs.ID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, gatewayCalls)

	var body struct {
		Data struct {
			SessionID  string `json:"sessionId"`
			SessionURL string `json:"sessionUrl"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "cs_test_9", body.Data.SessionID)
	assert.Equal(t, "https://checkout.example.com/cs_test_9", body.Data.SessionURL)
}

func TestCreateCheckoutSessionAlreadyEnrolled(t *testing.T) {
	gatewayCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gatewayCalls++
	}))
	defer server.Close()

	app, db := setupPaymentTest(t)
	config.AppConfig.GatewayAPIURL = server.URL

	student, crs := seedStudentAndCourse(t, db, 49.99)
	_, err := services.EnrollStudent(db, student, crs)
	require.NoError(t, err)

	resp := checkoutRequest(t, app, authToken(t, student), crs.ID)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, gatewayCalls, "duplicate purchase must be rejected before calling the gateway")
}

func TestCreateCheckoutSessionCourseNotFound(t *testing.T) {
	app, db := setupPaymentTest(t)

	student, _ := seedStudentAndCourse(t, db, 49.99)

	resp := checkoutRequest(t, app, authToken(t, student), 999999)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransactionsOwnerScoped(t *testing.T) {
	app, db := setupPaymentTest(t)

	student, crs := seedStudentAndCourse(t, db, 10)
	other := models.User{Name: "Other", Email: "other@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&other).Error)

	mine := models.Payment{TransactionID: "pi_mine", SessionID: "cs_mine", Currency: "USD", PaymentStatus: "paid", Amount: 10, UserID: student.ID, CourseID: crs.ID}
	theirs := models.Payment{TransactionID: "pi_theirs", SessionID: "cs_theirs", Currency: "USD", PaymentStatus: "paid", Amount: 10, UserID: other.ID, CourseID: crs.ID}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&theirs).Error)

	req := httptest.NewRequest(http.MethodGet, "/payment/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+authToken(t, student))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Transactions []models.Payment `json:"transactions"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data.Transactions, 1)
	assert.Equal(t, "pi_mine", body.Data.Transactions[0].TransactionID)
}

func TestTransactionDetailOwnerOnly(t *testing.T) {
	app, db := setupPaymentTest(t)

	student, crs := seedStudentAndCourse(t, db, 10)
	other := models.User{Name: "Other", Email: "other@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&other).Error)

	payment := models.Payment{TransactionID: "pi_detail", SessionID: "cs_detail", Currency: "USD", PaymentStatus: "paid", Amount: 10, UserID: student.ID, CourseID: crs.ID}
	require.NoError(t, db.Create(&payment).Error)

	// Owner can read it
	req := httptest.NewRequest(http.MethodGet, "/payment/transaction/pi_detail", nil)
	req.Header.Set("Authorization", "Bearer "+authToken(t, student))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Anyone else is forbidden
	req = httptest.NewRequest(http.MethodGet, "/payment/transaction/pi_detail", nil)
	req.Header.Set("Authorization", "Bearer "+authToken(t, other))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Unknown transaction id
	req = httptest.NewRequest(http.MethodGet, "/payment/transaction/pi_missing", nil)
	req.Header.Set("Authorization", "Bearer "+authToken(t, student))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
