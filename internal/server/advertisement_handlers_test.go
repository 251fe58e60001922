package server

import (
	"fmt"
	"net/http"
	"testing"

	"classifieds/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bike() models.AdvertisementFields {
	return models.AdvertisementFields{
		Title:       "Bike",
		Description: "Red, barely used",
		Type:        "sale",
		Category:    "sport",
		Price:       "100",
		Location:    "Riga",
	}
}

func TestAdvertisementLifecycle(t *testing.T) {
	app, db := newTestApp(t)
	alice := signUp(t, app, "alice")
	signUp(t, app, "bob")
	aliceToken := signIn(t, app, "alice")
	bobToken := signIn(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, "/advertisements/", aliceToken, bike())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ad := decode[models.Advertisement](t, resp)
	assert.Equal(t, "Bike", ad.Title)
	assert.Equal(t, "100", ad.Price)
	assert.Equal(t, uint(alice["id"].(float64)), ad.OwnerID)
	path := fmt.Sprintf("/advertisements/%d", ad.ID)

	t.Run("open read", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, ad.ID, decode[models.Advertisement](t, resp).ID)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		fields := bike()
		fields.Title = "Stolen"
		resp := doJSON(t, app, http.MethodPut, path, bobToken, fields)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, path, bobToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Advertisement{}).Where("id = ?", ad.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("owner replaces fields", func(t *testing.T) {
		fields := bike()
		fields.Title = "Blue bike"
		fields.Price = "negotiable"
		resp := doJSON(t, app, http.MethodPut, path, aliceToken, fields)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		updated := decode[models.Advertisement](t, resp)
		assert.Equal(t, "Blue bike", updated.Title)
		assert.Equal(t, "negotiable", updated.Price)
		assert.Equal(t, ad.OwnerID, updated.OwnerID)
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, path, aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, decode[map[string]string](t, resp), "detail")

		assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, path, "", nil).StatusCode)
	})
}

func TestAdvertisementMissing(t *testing.T) {
	app, _ := newTestApp(t)
	signUp(t, app, "alice")
	token := signIn(t, app, "alice")

	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, "/advertisements/999", "", nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPut, "/advertisements/999", token, bike()).StatusCode)
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodDelete, "/advertisements/999", token, nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodGet, "/advertisements/abc", "", nil).StatusCode)
}

func TestSearchAdvertisements(t *testing.T) {
	app, _ := newTestApp(t)
	signUp(t, app, "alice")
	token := signIn(t, app, "alice")

	for _, title := range []string{"Bike", "Mountain BIKE", "Car", "100% cotton"} {
		fields := bike()
		fields.Title = title
		require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/advertisements/", token, fields).StatusCode)
	}

	t.Run("case-insensitive substring", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/advertisements/search/?query=bik", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var titles []string
		for _, ad := range decode[[]models.Advertisement](t, resp) {
			titles = append(titles, ad.Title)
		}
		assert.ElementsMatch(t, []string{"Bike", "Mountain BIKE"}, titles)
	})

	t.Run("percent is literal", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/advertisements/search/?query=%25", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		ads := decode[[]models.Advertisement](t, resp)
		require.Len(t, ads, 1)
		assert.Equal(t, "100% cotton", ads[0].Title)
	})

	t.Run("missing query", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/advertisements/search/", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list paging", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/advertisements/?limit=2&offset=1", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		ads := decode[[]models.Advertisement](t, resp)
		require.Len(t, ads, 2)
		assert.Equal(t, "Mountain BIKE", ads[0].Title)
	})
}
