package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 30 * time.Second
	requestPacing  = 250 * time.Millisecond
	userAgent      = "ChapteredImport/1.0"
)

// Client is a thin TMDB client paced by a fixed interval, no retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Pacing  time.Duration
	Logger  *logrus.Logger
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Pacing == 0 {
		cfg.Pacing = requestPacing
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Every(cfg.Pacing), 1),
		logger:     cfg.Logger,
	}
}

type MovieSummary struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
}

type listResponse struct {
	Results []MovieSummary `json:"results"`
}

type MovieDetails struct {
	ID      int     `json:"id"`
	Runtime int     `json:"runtime"`
	Genres  []Genre `json:"genres"`
	Credits Credits `json:"credits"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Credits struct {
	Crew []CrewMember `json:"crew"`
}

type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// List fetches one page of a curated list endpoint (/movie/popular etc).
func (c *Client) List(ctx context.Context, path string, page int) ([]MovieSummary, error) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("page", strconv.Itoa(page))

	var out listResponse
	if err := c.get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Discover fetches one page of a genre discover query, most popular first.
func (c *Client) Discover(ctx context.Context, genreID, page int) ([]MovieSummary, error) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var out listResponse
	if err := c.get(ctx, "/discover/movie", params, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Details fetches a single movie with credits attached.
func (c *Client) Details(ctx context.Context, movieID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("append_to_response", "credits")

	var out MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
