package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nisantasi/storefront/internal/auth"
	"github.com/nisantasi/storefront/internal/models"
	pkghttp "github.com/nisantasi/storefront/pkg/http"
)

// FavoriteServiceInterface defines the interface for favorites business logic
type FavoriteServiceInterface interface {
	List(ctx context.Context, userID string) ([]models.FavoriteItem, error)
	Add(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error)
	Remove(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error)
}

// FavoriteHandler handles favorites HTTP requests
type FavoriteHandler struct {
	service FavoriteServiceInterface
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(service FavoriteServiceInterface) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// AddFavoriteRequest identifies the product to favorite
type AddFavoriteRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// FavoritesResponse wraps the favorites list
type FavoritesResponse struct {
	Favorites []models.FavoriteItem `json:"favorites"`
	Total     int                   `json:"total"`
}

func writeFavorites(w http.ResponseWriter, favorites []models.FavoriteItem) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(FavoritesResponse{Favorites: favorites, Total: len(favorites)})
}

// ListFavorites returns the user's favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	favorites, err := h.service.List(r.Context(), claims.UserID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	writeFavorites(w, favorites)
}

// AddFavorite favorites a product; repeated adds are a no-op
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	favorites, err := h.service.Add(r.Context(), claims.UserID, req.ProductID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Product not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	writeFavorites(w, favorites)
}

// RemoveFavorite unfavorites a product
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	productID := chi.URLParam(r, "productId")
	if productID == "" {
		pkghttp.WriteBadRequest(w, "Product ID is required")
		return
	}

	favorites, err := h.service.Remove(r.Context(), claims.UserID, productID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	writeFavorites(w, favorites)
}
