// fetchmovies pulls the TMDB list and discover endpoints and writes
// movies.json for the populate step. Offline job, not part of the serving
// path.
package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"chaptered_backend/internals/configs"
	"chaptered_backend/internals/imports/tmdb"
)

func main() {
	configs.LoadEnv()
	cfg := configs.LoadImportConfig()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	client := tmdb.NewClient(tmdb.ClientConfig{
		APIKey: cfg.TMDBAPIKey,
		Logger: logger,
	})

	records := tmdb.FetchMovies(context.Background(), client, logger)

	if err := tmdb.WriteJSON(cfg.MoviesJSONPath, records); err != nil {
		logger.WithError(err).Fatal("failed to write movies.json")
	}
	logger.WithFields(logrus.Fields{
		"count": len(records),
		"path":  cfg.MoviesJSONPath,
	}).Info("movies saved")
}
