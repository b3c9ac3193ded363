package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nisantasi/storefront/internal/auth"
	"github.com/nisantasi/storefront/internal/models"
	"github.com/nisantasi/storefront/internal/services"
	pkghttp "github.com/nisantasi/storefront/pkg/http"
)

// SettingsServiceInterface defines the interface for settings business logic
type SettingsServiceInterface interface {
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
	Update(ctx context.Context, userID string, update services.SettingsUpdate) (*models.UserSettings, error)
	Reset(ctx context.Context, userID string) (*models.UserSettings, error)
}

// SettingsHandler handles user settings HTTP requests
type SettingsHandler struct {
	service SettingsServiceInterface
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetSettings returns the user's settings, creating defaults on first read
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	settings, err := h.service.Get(r.Context(), claims.UserID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(settings)
}

// UpdateSettings applies a sectioned partial update
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req services.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	settings, err := h.service.Update(r.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "At least one settings section is required")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(settings)
}

// ResetSettings restores the defaults
func (h *SettingsHandler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	settings, err := h.service.Reset(r.Context(), claims.UserID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(settings)
}
