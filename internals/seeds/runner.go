package seeds

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"chaptered_backend/internals/configs"
	media "chaptered_backend/internals/seeds/media"
)

// RunMediaSeeds is the population step: backfill to the catalog floor, then
// upsert the fetch jobs' JSON output. Missing files are warnings, not errors.
func RunMediaSeeds(db *gorm.DB, cfg configs.ImportConfig, logger *logrus.Logger) error {
	logger.Info("Starting database population...")

	if n, err := media.EnsureMinimumBooks(db, media.MinimumCatalogSize); err != nil {
		return err
	} else if n > 0 {
		logger.WithField("created", n).Info("backfilled placeholder books")
	}
	if n, err := media.EnsureMinimumMovies(db, media.MinimumCatalogSize); err != nil {
		return err
	} else if n > 0 {
		logger.WithField("created", n).Info("backfilled placeholder movies")
	}

	if res, err := media.SeedBooksFromJSON(db, cfg.BooksJSONPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Books data file not found. Run fetchbooks first.")
		} else {
			logger.WithError(err).Error("Error populating books")
		}
	} else {
		logger.WithFields(logrus.Fields{
			"created": res.Created,
			"skipped": res.Skipped,
		}).Info("books populated")
	}

	if res, err := media.SeedMoviesFromJSON(db, cfg.MoviesJSONPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Movies data file not found. Run fetchmovies first.")
		} else {
			logger.WithError(err).Error("Error populating movies")
		}
	} else {
		logger.WithFields(logrus.Fields{
			"created": res.Created,
			"skipped": res.Skipped,
		}).Info("movies populated")
	}

	logger.Info("Database population completed!")
	return nil
}
