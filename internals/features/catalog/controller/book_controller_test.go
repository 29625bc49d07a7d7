package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogModel "chaptered_backend/internals/features/catalog/model"
	favoriteModel "chaptered_backend/internals/features/favorites/model"
	reviewModel "chaptered_backend/internals/features/reviews/model"
	"chaptered_backend/internals/testsupport"
)

func seedBook(t *testing.T, db *gorm.DB, title, author, genre string, year int) *catalogModel.MediaModel {
	t.Helper()
	m := &catalogModel.MediaModel{
		Title:           title,
		Author:          &author,
		Genre:           genre,
		PublicationYear: &year,
		Summary:         "A summary of " + title,
		MediaType:       catalogModel.MediaTypeBook,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedMovie(t *testing.T, db *gorm.DB, title, director, genre string, year int) *catalogModel.MediaModel {
	t.Helper()
	m := &catalogModel.MediaModel{
		Title:       title,
		Director:    &director,
		Genre:       genre,
		ReleaseYear: &year,
		Summary:     "A summary of " + title,
		MediaType:   catalogModel.MediaTypeMovie,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func TestCreateBookIgnoresClientMediaType(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	_, token := testsupport.CreateUser(t, db, "writer")

	resp := testsupport.DoJSON(t, app, http.MethodPost, "/books/", token,
		`{"title":"Dune","author":"Frank Herbert","genre":"Science Fiction","publication_year":1965,"summary":"Spice.","media_type":"movie"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := testsupport.ReadJSON(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "book", data["media_type"])

	var m catalogModel.MediaModel
	require.NoError(t, db.First(&m, "title = ?", "Dune").Error)
	assert.Equal(t, catalogModel.MediaTypeBook, m.MediaType)
}

func TestCreateBookRequiresAuth(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	resp := testsupport.DoJSON(t, app, http.MethodPost, "/books/", "",
		`{"title":"Dune","author":"Frank Herbert","genre":"Science Fiction","publication_year":1965,"summary":"Spice."}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateBookValidation(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	_, token := testsupport.CreateUser(t, db, "writer")

	resp := testsupport.DoJSON(t, app, http.MethodPost, "/books/", token,
		`{"author":"Frank Herbert","genre":"Science Fiction","publication_year":1965,"summary":"Spice."}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := testsupport.ReadJSON(t, resp)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "title")
}

func TestBookAvgRating(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	rated := seedBook(t, db, "Rated", "Someone", "Fantasy", 2001)
	unrated := seedBook(t, db, "Unrated", "Someone", "Fantasy", 2002)

	alice, _ := testsupport.CreateUser(t, db, "alice")
	bob, _ := testsupport.CreateUser(t, db, "bob")
	require.NoError(t, db.Create(&reviewModel.ReviewModel{
		UserID: alice.ID, MediaID: rated.ID, Rating: 3, ReviewText: "ok",
	}).Error)
	require.NoError(t, db.Create(&reviewModel.ReviewModel{
		UserID: bob.ID, MediaID: rated.ID, Rating: 5, ReviewText: "great",
	}).Error)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/books/"+rated.ID.String(), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := testsupport.ReadJSON(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, 4.0, data["avg_rating"])

	resp = testsupport.DoJSON(t, app, http.MethodGet, "/books/"+unrated.ID.String(), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = testsupport.ReadJSON(t, resp)["data"].(map[string]interface{})
	assert.Nil(t, data["avg_rating"])
}

func TestBookSearchIsCaseInsensitive(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	seedBook(t, db, "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937)
	seedBook(t, db, "Neuromancer", "William Gibson", "Science Fiction", 1984)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/books/?search=HOBBIT", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "The Hobbit", items[0].(map[string]interface{})["title"])

	// author matches too
	resp = testsupport.DoJSON(t, app, http.MethodGet, "/books/?search=gibson", "", "")
	items = testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Neuromancer", items[0].(map[string]interface{})["title"])
}

func TestBookOrderingDescending(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	seedBook(t, db, "Old", "A", "Fantasy", 1950)
	seedBook(t, db, "New", "B", "Fantasy", 2020)
	seedBook(t, db, "Mid", "C", "Fantasy", 1990)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/books/?ordering=-publication_year", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 3)
	titles := make([]string, 0, 3)
	for _, it := range items {
		titles = append(titles, it.(map[string]interface{})["title"].(string))
	}
	assert.Equal(t, []string{"New", "Mid", "Old"}, titles)
}

func TestBookResponseCarriesImageLinks(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	book := seedBook(t, db, "Dune", "Frank Herbert", "Science Fiction", 1965)
	book.ImageLinks = datatypes.JSONMap{"thumbnail": "https://books.example/dune.jpg"}
	require.NoError(t, db.Save(book).Error)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/books/"+book.ID.String(), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := testsupport.ReadJSON(t, resp)["data"].(map[string]interface{})
	links := data["image_links"].(map[string]interface{})
	assert.Equal(t, "https://books.example/dune.jpg", links["thumbnail"])

	// hand-created rows have no artwork and omit the field
	bare := seedBook(t, db, "Bare", "Nobody", "Fantasy", 2001)
	resp = testsupport.DoJSON(t, app, http.MethodGet, "/books/"+bare.ID.String(), "", "")
	data = testsupport.ReadJSON(t, resp)["data"].(map[string]interface{})
	assert.NotContains(t, data, "image_links")
}

func TestBookEndpointExcludesMovies(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	movie := seedMovie(t, db, "Alien", "Ridley Scott", "Horror", 1979)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/books/"+movie.ID.String(), "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateBookPartial(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	_, token := testsupport.CreateUser(t, db, "writer")

	book := seedBook(t, db, "Draft", "Original Author", "Fantasy", 2000)

	resp := testsupport.DoJSON(t, app, http.MethodPatch, "/books/"+book.ID.String(), token,
		`{"title":"Final"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := testsupport.ReadJSON(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "Final", data["title"])
	assert.Equal(t, "Original Author", data["author"])
}

func TestDeleteBookCascades(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	user, token := testsupport.CreateUser(t, db, "writer")

	book := seedBook(t, db, "Doomed", "Someone", "Fantasy", 2000)
	require.NoError(t, db.Create(&reviewModel.ReviewModel{
		UserID: user.ID, MediaID: book.ID, Rating: 4, ReviewText: "fine",
	}).Error)
	require.NoError(t, db.Create(&favoriteModel.FavoriteModel{
		UserID: user.ID, MediaID: book.ID, ListType: favoriteModel.ListTypeFavorite,
	}).Error)

	resp := testsupport.DoJSON(t, app, http.MethodDelete, "/books/"+book.ID.String(), token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reviews, favorites int64
	require.NoError(t, db.Model(&reviewModel.ReviewModel{}).Where("media_id = ?", book.ID).Count(&reviews).Error)
	require.NoError(t, db.Model(&favoriteModel.FavoriteModel{}).Where("media_id = ?", book.ID).Count(&favorites).Error)
	assert.Zero(t, reviews)
	assert.Zero(t, favorites)
}

func TestDeleteBookNotFound(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	_, token := testsupport.CreateUser(t, db, "writer")

	resp := testsupport.DoJSON(t, app, http.MethodDelete, "/books/7b00f1d0-0000-0000-0000-000000000000", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLatestBooksCapsAtFive(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)

	for i := 0; i < 7; i++ {
		seedBook(t, db, fmt.Sprintf("Book %d", i), "A", "Fantasy", 1990+i)
	}

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/latest/books", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 5)

	prev := int(items[0].(map[string]interface{})["publication_year"].(float64))
	assert.Equal(t, 1996, prev)
	for _, it := range items[1:] {
		year := int(it.(map[string]interface{})["publication_year"].(float64))
		assert.Less(t, year, prev)
		prev = year
	}
}
