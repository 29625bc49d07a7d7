package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] no .env file found, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set!")
	}
	if JWTRefreshSecret == "" {
		log.Println("[ERROR] JWT_REFRESH_SECRET is not set!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// IMPORT JOB CONFIG
// =======================

// ImportConfig carries everything the offline catalog jobs need. Fetchers
// receive it as a parameter instead of reading ambient env themselves.
type ImportConfig struct {
	GoogleBooksAPIKey string
	TMDBAPIKey        string
	BooksJSONPath     string
	MoviesJSONPath    string
}

func LoadImportConfig() ImportConfig {
	return ImportConfig{
		GoogleBooksAPIKey: GetEnv("GOOGLE_BOOKS_API_KEY"),
		TMDBAPIKey:        GetEnv("TMDB_API_KEY"),
		BooksJSONPath:     GetEnv("BOOKS_JSON_PATH", "scripts/data/books.json"),
		MoviesJSONPath:    GetEnv("MOVIES_JSON_PATH", "scripts/data/movies.json"),
	}
}
