// file: internals/features/catalog/route/catalog_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "chaptered_backend/internals/features/catalog/controller"
	authMiddleware "chaptered_backend/internals/middlewares/auth"
)

// CatalogRoutes wires books, movies and the /latest endpoints. Reads are
// public, writes need a token.
func CatalogRoutes(app *fiber.App, db *gorm.DB, jwtSecret string) {
	bookController := controller.NewBookController(db)
	movieController := controller.NewMovieController(db)
	latestController := controller.NewLatestController(db)

	requireAuth := authMiddleware.AuthMiddleware(jwtSecret)

	books := app.Group("/books")
	books.Get("/", bookController.List)
	books.Get("/:id", bookController.GetByID)
	books.Post("/", requireAuth, bookController.Create)
	books.Put("/:id", requireAuth, bookController.Update)
	books.Patch("/:id", requireAuth, bookController.Update)
	books.Delete("/:id", requireAuth, bookController.Delete)

	movies := app.Group("/movies")
	movies.Get("/", movieController.List)
	movies.Get("/:id", movieController.GetByID)
	movies.Post("/", requireAuth, movieController.Create)
	movies.Put("/:id", requireAuth, movieController.Update)
	movies.Patch("/:id", requireAuth, movieController.Update)
	movies.Delete("/:id", requireAuth, movieController.Delete)

	latest := app.Group("/latest")
	latest.Get("/books", latestController.LatestBooks)
	latest.Get("/movies", latestController.LatestMovies)
}
