package googlebooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func testClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Pacing:  time.Millisecond,
		Logger:  quietLogger(),
	})
}

func TestVolumesRequestShape(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_ = json.NewEncoder(w).Encode(VolumesResponse{})
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.Volumes(context.Background(), "subject:fantasy", 40, 40)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/volumes", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "subject:fantasy", q.Get("q"))
	assert.Equal(t, "40", q.Get("startIndex"))
	assert.Equal(t, "40", q.Get("maxResults"))
	assert.Equal(t, "test-key", q.Get("key"))
	assert.Equal(t, "en", q.Get("langRestrict"))
}

func TestVolumesNon200IsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.Volumes(context.Background(), "subject:fantasy", 0, 40)
	assert.Error(t, err)
}

func TestFetchBooksDedupesAndSkipsIncomplete(t *testing.T) {
	page := VolumesResponse{Items: []VolumeItem{
		{ID: "a", VolumeInfo: VolumeInfo{Title: "Dune", Authors: []string{"Frank Herbert"}, PublishedDate: "1965", Categories: []string{"Science Fiction"}, Description: "Spice."}},
		{ID: "b", VolumeInfo: VolumeInfo{Title: "Dune", Authors: []string{"Frank Herbert"}, PublishedDate: "1965"}},
		{ID: "c", VolumeInfo: VolumeInfo{Title: "No Authors"}},
	}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	records := FetchBooks(context.Background(), testClient(srv.URL), quietLogger())

	// every query returns the same page, still exactly one unique record
	require.Len(t, records, 1)
	assert.Equal(t, "Dune", records[0].Title)
	assert.Equal(t, "Frank Herbert", records[0].Author)
}

func TestFetchBooksSurvivesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	records := FetchBooks(context.Background(), testClient(srv.URL), quietLogger())
	assert.Empty(t, records)
}

func TestNormalizeVolume(t *testing.T) {
	rec := normalizeVolume(VolumeItem{
		ID: "x",
		VolumeInfo: VolumeInfo{
			Title:         "Alien: The Novel",
			Authors:       []string{"Alan Dean Foster"},
			PublishedDate: "1979-05-25",
			Categories:    []string{"Horror"},
			Description:   "In space.",
			PageCount:     280,
		},
	})

	assert.Equal(t, "x", rec.GoogleBooksID)
	require.NotNil(t, rec.PublicationYear)
	assert.Equal(t, 1979, *rec.PublicationYear)
	assert.Equal(t, "Horror", rec.Genre)
	assert.Equal(t, 280, rec.PageCount)
}

func TestNormalizeVolumeDefaults(t *testing.T) {
	rec := normalizeVolume(VolumeItem{
		VolumeInfo: VolumeInfo{Title: "Bare", Authors: []string{"Nobody"}},
	})

	assert.Nil(t, rec.PublicationYear)
	assert.Equal(t, "Fiction", rec.Genre)
	assert.Equal(t, "No description available.", rec.Summary)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	year := 1965
	path := filepath.Join(t.TempDir(), "data", "books.json")
	require.NoError(t, WriteJSON(path, []BookRecord{
		{GoogleBooksID: "a", Title: "Dune", Author: "Frank Herbert", PublicationYear: &year, Genre: "Science Fiction", Summary: "Spice."},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back []BookRecord
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, "Dune", back[0].Title)
}
