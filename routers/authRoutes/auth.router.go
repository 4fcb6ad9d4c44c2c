package authRoutes

import (
	authController "edumart/controllers/auth"
	"edumart/middleware"
	authValidator "edumart/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, authController.GetProfile)
	authGroup.Delete("/account", middleware.JWTMiddleware, authController.DeleteAccount)
}
