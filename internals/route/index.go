// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"chaptered_backend/internals/configs"
	catalogRoute "chaptered_backend/internals/features/catalog/route"
	favoriteRoute "chaptered_backend/internals/features/favorites/route"
	recommendationRoute "chaptered_backend/internals/features/recommendations/route"
	reviewRoute "chaptered_backend/internals/features/reviews/route"
	userRoute "chaptered_backend/internals/features/users/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	jwtSecret := configs.JWTSecret

	log.Println("[INFO] Setting up AuthRoutes...")
	userRoute.AuthRoutes(app, db, jwtSecret)

	log.Println("[INFO] Setting up ProfileRoutes...")
	userRoute.ProfileRoutes(app, db, jwtSecret)

	log.Println("[INFO] Setting up CatalogRoutes...")
	catalogRoute.CatalogRoutes(app, db, jwtSecret)

	log.Println("[INFO] Setting up ReviewRoutes...")
	reviewRoute.ReviewRoutes(app, db, jwtSecret)

	log.Println("[INFO] Setting up FavoriteRoutes...")
	favoriteRoute.FavoriteRoutes(app, db, jwtSecret)

	log.Println("[INFO] Setting up RecommendationRoutes...")
	recommendationRoute.RecommendationRoutes(app, db, jwtSecret)
}
