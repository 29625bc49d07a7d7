// file: internals/features/reviews/route/review_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "chaptered_backend/internals/features/reviews/controller"
	authMiddleware "chaptered_backend/internals/middlewares/auth"
)

func ReviewRoutes(app *fiber.App, db *gorm.DB, jwtSecret string) {
	reviewController := controller.NewReviewController(db)
	requireAuth := authMiddleware.AuthMiddleware(jwtSecret)

	reviews := app.Group("/reviews")
	reviews.Get("/", reviewController.List)
	reviews.Get("/:id", reviewController.GetByID)
	reviews.Post("/", requireAuth, reviewController.Create)
	reviews.Put("/:id", requireAuth, reviewController.Update)
	reviews.Patch("/:id", requireAuth, reviewController.Update)
	reviews.Delete("/:id", requireAuth, reviewController.Delete)
}
