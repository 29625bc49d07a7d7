// populate upserts the fetched catalog JSON into the media table, backfilling
// placeholders when the catalog is below the floor. Safe to run repeatedly.
package main

import (
	"github.com/sirupsen/logrus"

	"chaptered_backend/internals/configs"
	database "chaptered_backend/internals/databases"
	"chaptered_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg := configs.LoadImportConfig()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	database.ConnectDB()
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		logger.WithError(err).Fatal("migrate failed")
	}

	if err := seeds.RunMediaSeeds(database.DB, cfg, logger); err != nil {
		logger.WithError(err).Fatal("population failed")
	}
}
