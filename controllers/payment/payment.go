package paymentController

import (
	"errors"

	"edumart/config"
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"edumart/services"

	"github.com/gofiber/fiber/v2"
)

// GetCurrencies lists the currency codes courses may be priced in.
func GetCurrencies(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Currencies fetched successfully!", courseModels.AvailableCurrencies)
}

// GetGatewayConfig hands the frontend the gateway publishable key it
// needs to start a hosted checkout.
func GetGatewayConfig(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Gateway config fetched successfully!", fiber.Map{
		"publicKey": config.AppConfig.GatewayPublishableKey,
	})
}

// CreateCheckoutSession asks the payment gateway for a hosted checkout
// session for the requested course. Duplicate purchase attempts are
// rejected before money changes hands.
func CreateCheckoutSession(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated course ID
	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Data not found.", nil)
	}

	// Reject duplicate purchases without calling the gateway
	if _, found := services.FindEnrollment(database.Database.Db, user.ID, crs.ID); found {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Already Enrolled in the course.", nil)
	}

	session, err := services.CreateCheckoutSession(crs, user.ID)
	if err != nil {
		var providerErr *services.ProviderError
		if errors.As(err, &providerErr) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, providerErr.Message, nil)
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to create checkout session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"sessionId":  session.ID,
		"sessionUrl": session.URL,
	})
}

// GetTransactions lists the caller's own payment records.
func GetTransactions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated pagination request
	reqData, ok := c.Locals("validatedTransactionList").(*struct {
		Page  *int `query:"page"`
		Limit *int `query:"limit"`
	})

	db := database.Database.Db.Model(&models.Payment{}).Where("user_id = ?", userID)

	if !ok {
		var payments []models.Payment
		if err := db.Order("created_at desc").Find(&payments).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
		}
		response := map[string]interface{}{
			"transactions": payments,
			"pagination": map[string]interface{}{
				"total": int64(len(payments)),
				"page":  1,
				"limit": len(payments),
			},
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", response)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	var total int64
	db.Count(&total)

	var payments []models.Payment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	response := map[string]interface{}{
		"transactions": payments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", response)
}

// GetTransactionDetail returns a single payment record, owner-only.
func GetTransactionDetail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	transactionID := c.Params("transaction_id")

	var payment models.Payment
	if err := database.Database.Db.Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Transaction not found!", nil)
	}

	var policy middleware.OwnerOnly
	if !policy.Allows(database.Database.Db, middleware.ActionRead, user, payment) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transaction fetched successfully!", payment)
}
