package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogModel "chaptered_backend/internals/features/catalog/model"
	reviewModel "chaptered_backend/internals/features/reviews/model"
	userModel "chaptered_backend/internals/features/users/model"
	"chaptered_backend/internals/testsupport"
)

func seedBook(t *testing.T, db *gorm.DB, title string) *catalogModel.MediaModel {
	t.Helper()
	author := "Author of " + title
	year := 2000
	m := &catalogModel.MediaModel{
		Title:           title,
		Author:          &author,
		Genre:           "Fantasy",
		PublicationYear: &year,
		Summary:         "A summary.",
		MediaType:       catalogModel.MediaTypeBook,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedReview(t *testing.T, db *gorm.DB, user *userModel.UserModel, media *catalogModel.MediaModel, rating int) *reviewModel.ReviewModel {
	t.Helper()
	r := &reviewModel.ReviewModel{
		UserID:     user.ID,
		MediaID:    media.ID,
		Rating:     rating,
		ReviewText: "text",
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func TestCreateReviewOwnerComesFromToken(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	alice, aliceToken := testsupport.CreateUser(t, db, "alice")
	book := seedBook(t, db, "Dune")

	resp := testsupport.DoJSON(t, app, http.MethodPost, "/reviews/", aliceToken,
		fmt.Sprintf(`{"media":%q,"rating":5,"review_text":"Loved it."}`, book.ID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := testsupport.ReadJSON(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, alice.ID.String(), data["user"])
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, float64(5), data["rating"])
}

func TestCreateReviewRejectsSecondForSamePair(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	_, token := testsupport.CreateUser(t, db, "alice")
	book := seedBook(t, db, "Dune")

	body := fmt.Sprintf(`{"media":%q,"rating":5,"review_text":"Loved it."}`, book.ID)
	resp := testsupport.DoJSON(t, app, http.MethodPost, "/reviews/", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = testsupport.DoJSON(t, app, http.MethodPost, "/reviews/", token,
		fmt.Sprintf(`{"media":%q,"rating":1,"review_text":"Changed my mind."}`, book.ID))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "You have already reviewed this media", testsupport.ReadJSON(t, resp)["message"])

	// the first review is untouched
	var r reviewModel.ReviewModel
	require.NoError(t, db.First(&r, "media_id = ?", book.ID).Error)
	assert.Equal(t, 5, r.Rating)
}

func TestCreateReviewUnknownMedia(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	_, token := testsupport.CreateUser(t, db, "alice")

	resp := testsupport.DoJSON(t, app, http.MethodPost, "/reviews/", token,
		`{"media":"7b00f1d0-0000-0000-0000-000000000000","rating":5,"review_text":"Ghost."}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errs := testsupport.ReadJSON(t, resp)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "media")
}

func TestCreateReviewRatingBounds(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	_, token := testsupport.CreateUser(t, db, "alice")
	book := seedBook(t, db, "Dune")

	resp := testsupport.DoJSON(t, app, http.MethodPost, "/reviews/", token,
		fmt.Sprintf(`{"media":%q,"rating":6,"review_text":"Off the scale."}`, book.ID))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errs := testsupport.ReadJSON(t, resp)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "rating")
}

func TestReviewListLegacyParamPrecedence(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	alice, _ := testsupport.CreateUser(t, db, "alice")

	first := seedBook(t, db, "First")
	second := seedBook(t, db, "Second")
	seedReview(t, db, alice, first, 4)
	seedReview(t, db, alice, second, 2)

	// media_id wins over book_id
	path := fmt.Sprintf("/reviews/?media_id=%s&book_id=%s", first.ID, second.ID)
	resp := testsupport.DoJSON(t, app, http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, first.ID.String(), items[0].(map[string]interface{})["media"])

	// book_id alone still narrows
	resp = testsupport.DoJSON(t, app, http.MethodGet, "/reviews/?book_id="+second.ID.String(), "", "")
	items = testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, second.ID.String(), items[0].(map[string]interface{})["media"])
}

func TestReviewListRatingFilter(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	alice, _ := testsupport.CreateUser(t, db, "alice")

	seedReview(t, db, alice, seedBook(t, db, "First"), 4)
	seedReview(t, db, alice, seedBook(t, db, "Second"), 2)

	resp := testsupport.DoJSON(t, app, http.MethodGet, "/reviews/?rating=2", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items := testsupport.ReadJSON(t, resp)["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]interface{})["rating"])
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	alice, _ := testsupport.CreateUser(t, db, "alice")
	_, bobToken := testsupport.CreateUser(t, db, "bob")

	review := seedReview(t, db, alice, seedBook(t, db, "Dune"), 4)

	resp := testsupport.DoJSON(t, app, http.MethodPatch, "/reviews/"+review.ID.String(), bobToken,
		`{"rating":1}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var r reviewModel.ReviewModel
	require.NoError(t, db.First(&r, "id = ?", review.ID).Error)
	assert.Equal(t, 4, r.Rating)
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	db := testsupport.OpenTestDB(t)
	app := testsupport.NewTestApp(t, db)
	alice, aliceToken := testsupport.CreateUser(t, db, "alice")
	_, bobToken := testsupport.CreateUser(t, db, "bob")

	review := seedReview(t, db, alice, seedBook(t, db, "Dune"), 4)

	resp := testsupport.DoJSON(t, app, http.MethodDelete, "/reviews/"+review.ID.String(), bobToken, "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testsupport.DoJSON(t, app, http.MethodDelete, "/reviews/"+review.ID.String(), aliceToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&reviewModel.ReviewModel{}).Where("id = ?", review.ID).Count(&count).Error)
	assert.Zero(t, count)
}
