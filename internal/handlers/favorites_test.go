package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nisantasi/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteHandler_List(t *testing.T) {
	mockFavorites := &MockFavoriteService{
		ListFunc: func(ctx context.Context, userID string) ([]models.FavoriteItem, error) {
			return []models.FavoriteItem{
				{ProductID: "1", Name: "Klasik Siyah Babet", Price: 299.99, AddedAt: time.Now()},
			}, nil
		},
	}
	h := NewFavoriteHandler(mockFavorites)

	req := WithAuthContext(
		NewTestRequest(t, http.MethodGet, "/api/favorites", nil),
		"user123", "ayse@example.com")
	w := httptest.NewRecorder()

	h.ListFavorites(w, req)

	var resp FavoritesResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Favorites, 1)
	assert.Equal(t, "1", resp.Favorites[0].ProductID)
}

func TestFavoriteHandler_List_EmptyIsArray(t *testing.T) {
	mockFavorites := &MockFavoriteService{
		ListFunc: func(ctx context.Context, userID string) ([]models.FavoriteItem, error) {
			return []models.FavoriteItem{}, nil
		},
	}
	h := NewFavoriteHandler(mockFavorites)

	req := WithAuthContext(
		NewTestRequest(t, http.MethodGet, "/api/favorites", nil),
		"user123", "ayse@example.com")
	w := httptest.NewRecorder()

	h.ListFavorites(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"favorites":[]`)
}

func TestFavoriteHandler_Add(t *testing.T) {
	var addedID string
	mockFavorites := &MockFavoriteService{
		AddFunc: func(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error) {
			addedID = productID
			return []models.FavoriteItem{{ProductID: productID}}, nil
		},
	}
	h := NewFavoriteHandler(mockFavorites)

	req := WithAuthContext(
		NewTestRequest(t, http.MethodPost, "/api/favorites", AddFavoriteRequest{ProductID: "2"}),
		"user123", "ayse@example.com")
	w := httptest.NewRecorder()

	h.AddFavorite(w, req)

	var resp FavoritesResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "2", addedID)
	assert.Equal(t, 1, resp.Total)
}

func TestFavoriteHandler_Add_UnknownProduct(t *testing.T) {
	mockFavorites := &MockFavoriteService{
		AddFunc: func(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error) {
			return nil, models.ErrNotFound
		},
	}
	h := NewFavoriteHandler(mockFavorites)

	req := WithAuthContext(
		NewTestRequest(t, http.MethodPost, "/api/favorites", AddFavoriteRequest{ProductID: "999"}),
		"user123", "ayse@example.com")
	w := httptest.NewRecorder()

	h.AddFavorite(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}

func TestFavoriteHandler_Remove(t *testing.T) {
	var removedID string
	mockFavorites := &MockFavoriteService{
		RemoveFunc: func(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error) {
			removedID = productID
			return []models.FavoriteItem{}, nil
		},
	}
	h := NewFavoriteHandler(mockFavorites)

	req := WithAuthContext(
		NewTestRequest(t, http.MethodDelete, "/api/favorites/1", nil),
		"user123", "ayse@example.com")
	req = WithChiRouteContext(req, map[string]string{"productId": "1"})
	w := httptest.NewRecorder()

	h.RemoveFavorite(w, req)

	var resp FavoritesResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "1", removedID)
	assert.Equal(t, 0, resp.Total)
}
