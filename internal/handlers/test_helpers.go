package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nisantasi/storefront/internal/auth"
	"github.com/nisantasi/storefront/internal/models"
	"github.com/nisantasi/storefront/internal/services"
	pkghttp "github.com/nisantasi/storefront/pkg/http"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAuthContext adds user claims to request context for testing authenticated endpoints
func WithAuthContext(req *http.Request, userID, email string) *http.Request {
	claims := &models.TokenClaims{
		UserID: userID,
		Email:  email,
		Type:   "access",
	}
	ctx := context.WithValue(req.Context(), auth.UserContextKey, claims)
	return req.WithContext(ctx)
}

// WithChiRouteContext adds chi URL parameters to request context for testing
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, input services.RegisterInput) (*models.User, *services.IssueResult, error)
	LoginFunc    func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	RefreshFunc  func(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
}

func (m *MockAuthService) Register(ctx context.Context, input services.RegisterInput) (*models.User, *services.IssueResult, error) {
	if m.RegisterFunc == nil {
		return nil, nil, models.ErrConflict
	}
	return m.RegisterFunc(ctx, input)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.LoginFunc(ctx, email, password)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
	if m.RefreshFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.RefreshFunc(ctx, refreshToken)
}

// MockVerificationService implements VerificationServiceInterface for testing
type MockVerificationService struct {
	ResendFunc   func(ctx context.Context, email string) (*services.IssueResult, error)
	ValidateFunc func(ctx context.Context, email, code string) error
	StatusFunc   func(ctx context.Context, email string) (bool, error)
}

func (m *MockVerificationService) Resend(ctx context.Context, email string) (*services.IssueResult, error) {
	if m.ResendFunc == nil {
		return &services.IssueResult{Notified: true}, nil
	}
	return m.ResendFunc(ctx, email)
}

func (m *MockVerificationService) Validate(ctx context.Context, email, code string) error {
	if m.ValidateFunc == nil {
		return nil
	}
	return m.ValidateFunc(ctx, email, code)
}

func (m *MockVerificationService) Status(ctx context.Context, email string) (bool, error) {
	if m.StatusFunc == nil {
		return false, nil
	}
	return m.StatusFunc(ctx, email)
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	GetProfileFunc    func(ctx context.Context, id string) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, id string, update services.ProfileUpdate) (*models.User, error)
	UpdateAvatarFunc  func(ctx context.Context, id, contentType string, data []byte) (string, error)
}

func (m *MockUserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	if m.GetProfileFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetProfileFunc(ctx, id)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id string, update services.ProfileUpdate) (*models.User, error) {
	if m.UpdateProfileFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateProfileFunc(ctx, id, update)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, id, contentType string, data []byte) (string, error) {
	if m.UpdateAvatarFunc == nil {
		return "", models.ErrNotFound
	}
	return m.UpdateAvatarFunc(ctx, id, contentType, data)
}

// MockSettingsService implements SettingsServiceInterface for testing
type MockSettingsService struct {
	GetFunc    func(ctx context.Context, userID string) (*models.UserSettings, error)
	UpdateFunc func(ctx context.Context, userID string, update services.SettingsUpdate) (*models.UserSettings, error)
	ResetFunc  func(ctx context.Context, userID string) (*models.UserSettings, error)
}

func (m *MockSettingsService) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	if m.GetFunc == nil {
		return models.DefaultSettings(userID, timeZero()), nil
	}
	return m.GetFunc(ctx, userID)
}

func (m *MockSettingsService) Update(ctx context.Context, userID string, update services.SettingsUpdate) (*models.UserSettings, error) {
	if m.UpdateFunc == nil {
		return models.DefaultSettings(userID, timeZero()), nil
	}
	return m.UpdateFunc(ctx, userID, update)
}

func (m *MockSettingsService) Reset(ctx context.Context, userID string) (*models.UserSettings, error) {
	if m.ResetFunc == nil {
		return models.DefaultSettings(userID, timeZero()), nil
	}
	return m.ResetFunc(ctx, userID)
}

func timeZero() time.Time { return time.Time{} }

// MockCartService implements CartServiceInterface for testing
type MockCartService struct {
	GetFunc            func(ctx context.Context, userID string) (*models.Cart, error)
	AddItemFunc        func(ctx context.Context, userID, productID, size, color string, quantity int) (*models.Cart, error)
	UpdateQuantityFunc func(ctx context.Context, userID, productID, size, color string, quantity int) (*models.Cart, error)
	RemoveItemFunc     func(ctx context.Context, userID, productID, size, color string) (*models.Cart, error)
	ClearFunc          func(ctx context.Context, userID string) error
}

func (m *MockCartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	if m.GetFunc == nil {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return m.GetFunc(ctx, userID)
}

func (m *MockCartService) AddItem(ctx context.Context, userID, productID, size, color string, quantity int) (*models.Cart, error) {
	if m.AddItemFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.AddItemFunc(ctx, userID, productID, size, color, quantity)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID, productID, size, color string, quantity int) (*models.Cart, error) {
	if m.UpdateQuantityFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateQuantityFunc(ctx, userID, productID, size, color, quantity)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, productID, size, color string) (*models.Cart, error) {
	if m.RemoveItemFunc == nil {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return m.RemoveItemFunc(ctx, userID, productID, size, color)
}

func (m *MockCartService) Clear(ctx context.Context, userID string) error {
	if m.ClearFunc == nil {
		return nil
	}
	return m.ClearFunc(ctx, userID)
}

// MockFavoriteService implements FavoriteServiceInterface for testing
type MockFavoriteService struct {
	ListFunc   func(ctx context.Context, userID string) ([]models.FavoriteItem, error)
	AddFunc    func(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error)
	RemoveFunc func(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error)
}

func (m *MockFavoriteService) List(ctx context.Context, userID string) ([]models.FavoriteItem, error) {
	if m.ListFunc == nil {
		return []models.FavoriteItem{}, nil
	}
	return m.ListFunc(ctx, userID)
}

func (m *MockFavoriteService) Add(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error) {
	if m.AddFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.AddFunc(ctx, userID, productID)
}

func (m *MockFavoriteService) Remove(ctx context.Context, userID, productID string) ([]models.FavoriteItem, error) {
	if m.RemoveFunc == nil {
		return []models.FavoriteItem{}, nil
	}
	return m.RemoveFunc(ctx, userID, productID)
}
