// file: internals/features/favorites/route/favorite_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "chaptered_backend/internals/features/favorites/controller"
	authMiddleware "chaptered_backend/internals/middlewares/auth"
)

func FavoriteRoutes(app *fiber.App, db *gorm.DB, jwtSecret string) {
	favoriteController := controller.NewFavoriteController(db)
	requireAuth := authMiddleware.AuthMiddleware(jwtSecret)

	favorites := app.Group("/favorites", requireAuth)
	favorites.Get("/", favoriteController.List)
	favorites.Get("/:id", favoriteController.GetByID)
	favorites.Post("/", favoriteController.Create)
	favorites.Put("/:id", favoriteController.Update)
	favorites.Patch("/:id", favoriteController.Update)
	favorites.Delete("/:id", favoriteController.Delete)

	app.Get("/user/favorites", requireAuth, favoriteController.UserFavorites)
}
