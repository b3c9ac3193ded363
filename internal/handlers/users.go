package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/nisantasi/storefront/internal/auth"
	"github.com/nisantasi/storefront/internal/models"
	"github.com/nisantasi/storefront/internal/services"
	pkghttp "github.com/nisantasi/storefront/pkg/http"
)

// UserServiceInterface defines the interface for profile business logic
type UserServiceInterface interface {
	GetProfile(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, update services.ProfileUpdate) (*models.User, error)
	UpdateAvatar(ctx context.Context, id, contentType string, data []byte) (string, error)
}

// UserHandler handles profile HTTP requests
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// UpdateProfileRequest represents the request body for a profile update.
// Absent fields are left untouched.
type UpdateProfileRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=200"`
	Phone       *string             `json:"phone" validate:"omitempty,max=32"`
	BirthDate   *string             `json:"birthDate" validate:"omitempty,max=32"`
	Gender      *string             `json:"gender" validate:"omitempty,oneof=female male other"`
	Avatar      *string             `json:"avatar"`
	Bio         *string             `json:"bio" validate:"omitempty,max=1000"`
	Address     *models.Address     `json:"address"`
	SocialMedia *models.SocialMedia `json:"socialMedia"`
	Email       *string             `json:"email" validate:"omitempty,email"`

	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"omitempty,min=6,max=128"`
}

// GetProfile returns the logged-in user's profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	user, err := h.service.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
}

// UpdateProfile applies a partial profile update
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	// A password change needs both halves.
	if (req.CurrentPassword == "") != (req.NewPassword == "") {
		pkghttp.WriteBadRequest(w, "Both currentPassword and newPassword are required to change the password")
		return
	}

	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &normalized
	}

	user, err := h.service.UpdateProfile(r.Context(), claims.UserID, services.ProfileUpdate{
		Name:            req.Name,
		Phone:           req.Phone,
		BirthDate:       req.BirthDate,
		Gender:          req.Gender,
		Avatar:          req.Avatar,
		Bio:             req.Bio,
		Address:         req.Address,
		SocialMedia:     req.SocialMedia,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrUnauthorized):
			pkghttp.WriteUnauthorized(w, "Current password is incorrect")
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "This email is already in use")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Invalid profile data")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
}

// UploadAvatar accepts a raw image body and stores it on the profile
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	contentType := r.Header.Get("Content-Type")
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 5*1024*1024+1))
	if err != nil {
		pkghttp.WriteBadRequest(w, "Image must be at most 5MB")
		return
	}

	avatarURL, err := h.service.UpdateAvatar(r.Context(), claims.UserID, contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Avatar must be an image of at most 5MB")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"avatar": avatarURL})
}
