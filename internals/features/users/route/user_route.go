// file: internals/features/users/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "chaptered_backend/internals/features/users/controller"
	middlewares "chaptered_backend/internals/middlewares"
	authMiddleware "chaptered_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, jwtSecret string) {
	authController := controller.NewAuthController(db)
	requireAuth := authMiddleware.AuthMiddleware(jwtSecret)

	auth := app.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), authController.Register)
	auth.Post("/token", middlewares.LoginRateLimiter(), authController.Login)
	auth.Post("/token/refresh", authController.RefreshToken)
	auth.Post("/password/change", requireAuth, authController.ChangePassword)
}

func ProfileRoutes(app *fiber.App, db *gorm.DB, jwtSecret string) {
	profileController := controller.NewUserProfileController(db)
	requireAuth := authMiddleware.AuthMiddleware(jwtSecret)

	profiles := app.Group("/profiles", requireAuth)
	profiles.Get("/", profileController.List)
	profiles.Get("/:id", profileController.GetByID)
	profiles.Post("/", profileController.Create)
	profiles.Put("/:id", profileController.Update)
	profiles.Patch("/:id", profileController.Update)
	profiles.Delete("/:id", profileController.Delete)
}
