// file: internals/features/recommendations/route/recommendation_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "chaptered_backend/internals/features/recommendations/controller"
	authMiddleware "chaptered_backend/internals/middlewares/auth"
)

func RecommendationRoutes(app *fiber.App, db *gorm.DB, jwtSecret string) {
	recommendationController := controller.NewRecommendationController(db)

	// optional auth: anonymous callers get the global fallback
	app.Get("/recommendations",
		authMiddleware.OptionalAuthMiddleware(jwtSecret),
		recommendationController.Recommendations,
	)
}
