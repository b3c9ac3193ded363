package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nisantasi/storefront/internal/models"
	"github.com/nisantasi/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserHandler_GetProfile(t *testing.T) {
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ayse Yilmaz",
		Email: "ayse@example.com",
	}
	mockUsers := &MockUserService{
		GetProfileFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}
	h := NewUserHandler(mockUsers)

	req := WithAuthContext(
		NewTestRequest(t, http.MethodGet, "/api/users/profile", nil),
		user.ID.Hex(), user.Email)
	w := httptest.NewRecorder()

	h.GetProfile(w, req)

	var resp models.User
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "ayse@example.com", resp.Email)
	assert.NotContains(t, w.Body.String(), "password", "password hash must never be serialized")
}

func TestUserHandler_GetProfile_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&MockUserService{})

	req := NewTestRequest(t, http.MethodGet, "/api/users/profile", nil)
	w := httptest.NewRecorder()

	h.GetProfile(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	var gotUpdate services.ProfileUpdate
	mockUsers := &MockUserService{
		UpdateProfileFunc: func(ctx context.Context, id string, update services.ProfileUpdate) (*models.User, error) {
			gotUpdate = update
			return &models.User{Name: *update.Name}, nil
		},
	}
	h := NewUserHandler(mockUsers)

	name := "Ayse Demir"
	req := WithAuthContext(
		NewTestRequest(t, http.MethodPut, "/api/users/profile", UpdateProfileRequest{Name: &name}),
		"user123", "ayse@example.com")
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotUpdate.Name)
	assert.Equal(t, "Ayse Demir", *gotUpdate.Name)
	assert.Nil(t, gotUpdate.Email)
}

func TestUserHandler_UpdateProfile_HalfPasswordChangeRejected(t *testing.T) {
	h := NewUserHandler(&MockUserService{})

	req := WithAuthContext(
		NewTestRequest(t, http.MethodPut, "/api/users/profile", UpdateProfileRequest{
			NewPassword: "newsecret",
		}),
		"user123", "ayse@example.com")
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestUserHandler_UpdateProfile_EmailConflict(t *testing.T) {
	mockUsers := &MockUserService{
		UpdateProfileFunc: func(ctx context.Context, id string, update services.ProfileUpdate) (*models.User, error) {
			return nil, models.ErrConflict
		},
	}
	h := NewUserHandler(mockUsers)

	email := "taken@example.com"
	req := WithAuthContext(
		NewTestRequest(t, http.MethodPut, "/api/users/profile", UpdateProfileRequest{Email: &email}),
		"user123", "ayse@example.com")
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	AssertErrorResponse(t, w, http.StatusConflict, "conflict")
}

func TestUserHandler_UploadAvatar(t *testing.T) {
	mockUsers := &MockUserService{
		UpdateAvatarFunc: func(ctx context.Context, id, contentType string, data []byte) (string, error) {
			return "data:image/png;base64,iVBOR", nil
		},
	}
	h := NewUserHandler(mockUsers)

	req := httptest.NewRequest(http.MethodPost, "/api/users/avatar", bytes.NewReader([]byte{0x89, 0x50}))
	req.Header.Set("Content-Type", "image/png")
	req = WithAuthContext(req, "user123", "ayse@example.com")
	w := httptest.NewRecorder()

	h.UploadAvatar(w, req)

	var resp map[string]string
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Contains(t, resp["avatar"], "data:image/png")
}

func TestUserHandler_UploadAvatar_RejectsNonImage(t *testing.T) {
	mockUsers := &MockUserService{
		UpdateAvatarFunc: func(ctx context.Context, id, contentType string, data []byte) (string, error) {
			return "", models.ErrBadRequest
		},
	}
	h := NewUserHandler(mockUsers)

	req := httptest.NewRequest(http.MethodPost, "/api/users/avatar", bytes.NewReader([]byte("%PDF")))
	req.Header.Set("Content-Type", "application/pdf")
	req = WithAuthContext(req, "user123", "ayse@example.com")
	w := httptest.NewRecorder()

	h.UploadAvatar(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}
