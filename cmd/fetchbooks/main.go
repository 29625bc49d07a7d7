// fetchbooks pulls the Google Books catalog queries and writes books.json
// for the populate step. Offline job, not part of the serving path.
package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"chaptered_backend/internals/configs"
	"chaptered_backend/internals/imports/googlebooks"
)

func main() {
	configs.LoadEnv()
	cfg := configs.LoadImportConfig()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	client := googlebooks.NewClient(googlebooks.ClientConfig{
		APIKey: cfg.GoogleBooksAPIKey,
		Logger: logger,
	})

	records := googlebooks.FetchBooks(context.Background(), client, logger)

	if err := googlebooks.WriteJSON(cfg.BooksJSONPath, records); err != nil {
		logger.WithError(err).Fatal("failed to write books.json")
	}
	logger.WithFields(logrus.Fields{
		"count": len(records),
		"path":  cfg.BooksJSONPath,
	}).Info("books saved")
}
