package paymentRoutes

import (
	paymentController "edumart/controllers/payment"
	"edumart/middleware"
	paymentValidator "edumart/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Get("/currencies", paymentController.GetCurrencies)
	paymentGroup.Get("/config", middleware.JWTMiddleware, paymentController.GetGatewayConfig)
	paymentGroup.Post("/checkout-session", middleware.JWTMiddleware, paymentValidator.CheckoutSession(), paymentController.CreateCheckoutSession)

	// Invoked by the payment gateway, authenticated by signature only
	paymentGroup.Post("/webhook", paymentController.HandleWebhook)

	paymentGroup.Get("/transactions", middleware.JWTMiddleware, paymentValidator.TransactionList(), paymentController.GetTransactions)
	paymentGroup.Get("/transaction/:transaction_id", middleware.JWTMiddleware, paymentController.GetTransactionDetail)
}
