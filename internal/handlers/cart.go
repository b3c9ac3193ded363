package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nisantasi/storefront/internal/auth"
	"github.com/nisantasi/storefront/internal/models"
	pkghttp "github.com/nisantasi/storefront/pkg/http"
)

// CartServiceInterface defines the interface for cart business logic
type CartServiceInterface interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID, productID, size, color string, quantity int) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID, size, color string, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID, size, color string) (*models.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// CartHandler handles cart HTTP requests
type CartHandler struct {
	service CartServiceInterface
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(service CartServiceInterface) *CartHandler {
	return &CartHandler{service: service}
}

// CartItemRequest identifies a cart line, optionally with a quantity
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=0,lte=99"`
}

// CartResponse wraps the cart with its derived totals
type CartResponse struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

func writeCart(w http.ResponseWriter, cart *models.Cart) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(CartResponse{
		Items:      cart.Items,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	})
}

// GetCart returns the logged-in user's cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	cart, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	writeCart(w, cart)
}

// AddItem merges a product into the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	cart, err := h.service.AddItem(r.Context(), claims.UserID, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Product not found")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Product is out of stock or the size/color is not offered")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	writeCart(w, cart)
}

// UpdateItem sets a line's quantity; zero removes the line
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), claims.UserID, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Cart item not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	writeCart(w, cart)
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), claims.UserID, req.ProductID, req.Size, req.Color)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	writeCart(w, cart)
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	if err := h.service.Clear(r.Context(), claims.UserID); err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
