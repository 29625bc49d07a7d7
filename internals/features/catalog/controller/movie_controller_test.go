package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "chaptered_backend/internals/features/catalog/model"
	"chaptered_backend/internals/testsupport"
)

func TestCreateMovieIgnoresClientMediaType(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	_, token := testsupport.CreateUser(t, db, "writer")

	resp := testsupport.DoJSON(t, app, http.MethodPost, "/movies/", token,
		`{"title":"Heat","director":"Michael Mann","genre":"Crime","release_year":1995,"summary":"Heist.","media_type":"book"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := testsupport.ReadJSON(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "movie", data["media_type"])

	var m catalogModel.MediaModel
	require.NoError(t, db.First(&m, "title = ?", "Heat").Error)
	assert.Equal(t, catalogModel.MediaTypeMovie, m.MediaType)
}

func TestMovieGenreFilterIsExact(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	seedMovie(t, db, "Alien", "Ridley Scott", "Horror", 1979)
	seedMovie(t, db, "Aliens", "James Cameron", "Action", 1986)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/movies/?genre=Horror", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Alien", items[0].(map[string]interface{})["title"])
}

func TestMovieReleaseYearFilter(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	seedMovie(t, db, "Alien", "Ridley Scott", "Horror", 1979)
	seedMovie(t, db, "Blade Runner", "Ridley Scott", "Science Fiction", 1982)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/movies/?release_year=1982", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Blade Runner", items[0].(map[string]interface{})["title"])

	// non-integer year is a field error, not a silent no-op
	resp = testsupport.DoJSON(t, app, http.MethodGet, "/movies/?release_year=eighties", "", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := testsupport.ReadJSON(t, resp)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "release_year")
}

func TestMovieSearchMatchesDirector(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	seedMovie(t, db, "Alien", "Ridley Scott", "Horror", 1979)
	seedMovie(t, db, "Heat", "Michael Mann", "Crime", 1995)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/movies/?search=scott", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Alien", items[0].(map[string]interface{})["title"])
}

func TestMovieEndpointExcludesBooks(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	book := seedBook(t, db, "Dune", "Frank Herbert", "Science Fiction", 1965)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/movies/"+book.ID.String(), "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLatestMoviesOrdering(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	seedMovie(t, db, "Oldest", "A", "Drama", 1970)
	seedMovie(t, db, "Newest", "B", "Drama", 2024)
	seedMovie(t, db, "Middle", "C", "Drama", 2000)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/latest/movies", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 3)
	assert.Equal(t, "Newest", items[0].(map[string]interface{})["title"])
	assert.Equal(t, "Oldest", items[2].(map[string]interface{})["title"])
}
