package googlebooks

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
	defaultBaseURL = "https://www.googleapis.com/books/v1"
	defaultTimeout = 30 * time.Second
	requestPacing  = 500 * time.Millisecond
	userAgent      = "ChapteredImport/1.0"
)

// Client is a thin Google Books volumes client. Calls are paced by a fixed
// interval; errors are returned to the caller, no retries.
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

type VolumesResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []VolumeItem `json:"items"`
}

type VolumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string            `json:"title"`
	Authors       []string          `json:"authors"`
	PublishedDate string            `json:"publishedDate"`
	Categories    []string          `json:"categories"`
	Description   string            `json:"description"`
	PageCount     int               `json:"pageCount"`
	ImageLinks    map[string]string `json:"imageLinks"`
}

// Volumes fetches one page of search results.
func (c *Client) Volumes(ctx context.Context, query string, startIndex, maxResults int) (*VolumesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("langRestrict", "en")
	params.Set("orderBy", "relevance")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books returned status %d", resp.StatusCode)
	}

	var out VolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"query":       query,
		"start_index": startIndex,
		"items":       len(out.Items),
	}).Debug("volumes page fetched")

	return &out, nil
}
