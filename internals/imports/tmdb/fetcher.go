package tmdb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

type listEndpoint struct {
	Path  string
	Pages int
	Desc  string
}

var listEndpoints = []listEndpoint{
	{Path: "/movie/popular", Pages: 20, Desc: "popular movies"},
	{Path: "/movie/top_rated", Pages: 20, Desc: "top rated movies"},
	{Path: "/movie/now_playing", Pages: 10, Desc: "now playing movies"},
	{Path: "/movie/upcoming", Pages: 10, Desc: "upcoming movies"},
}

var discoverGenres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

const discoverPages = 5

// MovieRecord is the normalized row shape written to movies.json and read
// back by the population step.
type MovieRecord struct {
	TMDBID       int     `json:"tmdb_id"`
	Title        string  `json:"title"`
	Director     string  `json:"director"`
	ReleaseYear  *int    `json:"release_year"`
	Genre        string  `json:"genre"`
	Summary      string  `json:"summary"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	Runtime      int     `json:"runtime"`
}

// FetchMovies walks the curated list endpoints, then the per-genre discover
// pages. Dedupe is by TMDB id. An API error aborts only the loop it happened
// in; the next endpoint/genre still runs.
func FetchMovies(ctx context.Context, client *Client, logger *logrus.Logger) []MovieRecord {
	var all []MovieRecord
	seen := make(map[int]struct{})

	for _, endpoint := range listEndpoints {
		for page := 1; page <= endpoint.Pages; page++ {
			movies, err := client.List(ctx, endpoint.Path, page)
			if err != nil {
				logger.WithError(err).WithField("endpoint", endpoint.Path).Warn("endpoint aborted")
				break
			}
			if len(movies) == 0 {
				break
			}

			for _, movie := range movies {
				if _, dup := seen[movie.ID]; dup {
					continue
				}
				seen[movie.ID] = struct{}{}
				if rec := processMovie(ctx, client, logger, movie); rec != nil {
					all = append(all, *rec)
				}
			}

			logger.WithFields(logrus.Fields{
				"endpoint": endpoint.Desc,
				"page":     page,
				"movies":   len(movies),
			}).Info("fetched movies page")
		}
	}

	for _, genre := range discoverGenres {
		for page := 1; page <= discoverPages; page++ {
			movies, err := client.Discover(ctx, genre.ID, page)
			if err != nil {
				logger.WithError(err).WithField("genre", genre.Name).Warn("genre aborted")
				break
			}
			if len(movies) == 0 {
				break
			}

			newMovies := 0
			for _, movie := range movies {
				if _, dup := seen[movie.ID]; dup {
					continue
				}
				seen[movie.ID] = struct{}{}
				if rec := processMovie(ctx, client, logger, movie); rec != nil {
					all = append(all, *rec)
					newMovies++
				}
			}

			logger.WithFields(logrus.Fields{
				"genre":      genre.Name,
				"page":       page,
				"new_movies": newMovies,
			}).Info("fetched genre page")

			if newMovies == 0 {
				break
			}
		}
	}

	logger.WithField("total", len(all)).Info("unique movies collected")
	return all
}

// processMovie resolves the director from the credits and normalizes the row.
// Returns nil when the movie has no release date or the detail call fails.
func processMovie(ctx context.Context, client *Client, logger *logrus.Logger, movie MovieSummary) *MovieRecord {
	if movie.ReleaseDate == "" {
		return nil
	}

	details, err := client.Details(ctx, movie.ID)
	if err != nil {
		logger.WithError(err).WithField("movie_id", movie.ID).Warn("details fetch failed")
		return nil
	}

	director := "Unknown"
	for _, crew := range details.Credits.Crew {
		if crew.Job == "Director" {
			director = crew.Name
			break
		}
	}

	var year *int
	if len(movie.ReleaseDate) >= 4 {
		if y, err := strconv.Atoi(movie.ReleaseDate[:4]); err == nil {
			year = &y
		}
	}

	genreNames := make([]string, 0, len(details.Genres))
	for _, g := range details.Genres {
		genreNames = append(genreNames, g.Name)
	}

	return &MovieRecord{
		TMDBID:       movie.ID,
		Title:        movie.Title,
		Director:     director,
		ReleaseYear:  year,
		Genre:        strings.Join(genreNames, ", "),
		Summary:      movie.Overview,
		PosterPath:   movie.PosterPath,
		BackdropPath: movie.BackdropPath,
		VoteAverage:  movie.VoteAverage,
		Runtime:      details.Runtime,
	}
}

// WriteJSON dumps the collected records for the population step.
func WriteJSON(path string, records []MovieRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
