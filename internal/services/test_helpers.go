package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nisantasi/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository implements the user persistence interfaces for testing
type MockUserRepository struct {
	GetByIDFunc            func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc         func(ctx context.Context, email string) (*models.User, error)
	CreateFunc             func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFieldsFunc       func(ctx context.Context, id string, set bson.M) (*models.User, error)
	UpdateVerificationFunc func(ctx context.Context, email string, patch models.VerificationPatch) error
	UpdateFavoritesFunc    func(ctx context.Context, id string, favorites []models.FavoriteItem) error
	EmailInUseFunc         func(ctx context.Context, email, excludeID string) (bool, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id string, set bson.M) (*models.User, error) {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, set)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdateVerification(ctx context.Context, email string, patch models.VerificationPatch) error {
	if m.UpdateVerificationFunc != nil {
		return m.UpdateVerificationFunc(ctx, email, patch)
	}
	return nil
}

func (m *MockUserRepository) UpdateFavorites(ctx context.Context, id string, favorites []models.FavoriteItem) error {
	if m.UpdateFavoritesFunc != nil {
		return m.UpdateFavoritesFunc(ctx, id, favorites)
	}
	return nil
}

func (m *MockUserRepository) EmailInUse(ctx context.Context, email, excludeID string) (bool, error) {
	if m.EmailInUseFunc != nil {
		return m.EmailInUseFunc(ctx, email, excludeID)
	}
	return false, nil
}

// MockMailer implements Mailer for testing
type MockMailer struct {
	SendVerificationCodeFunc func(ctx context.Context, email, code, displayName string) error
	SentCodes                []string
}

func (m *MockMailer) SendVerificationCode(ctx context.Context, email, code, displayName string) error {
	m.SentCodes = append(m.SentCodes, code)
	if m.SendVerificationCodeFunc != nil {
		return m.SendVerificationCodeFunc(ctx, email, code, displayName)
	}
	return nil
}

// MockTokenManager implements TokenIssuer for testing
type MockTokenManager struct {
	GenerateAccessTokenFunc  func(userID, email string) (string, error)
	GenerateRefreshTokenFunc func(userID, email string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*models.TokenClaims, error)
}

func (m *MockTokenManager) GenerateAccessToken(userID, email string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, email)
	}
	return "access_token_" + userID, nil
}

func (m *MockTokenManager) GenerateRefreshToken(userID, email string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, email)
	}
	return "refresh_token_" + userID, nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return NewTokenClaims("user123", "user@example.com", "access"), nil
}

// MockCodeIssuer implements CodeIssuer for testing
type MockCodeIssuer struct {
	IssueFunc func(ctx context.Context, email string) (*IssueResult, error)
}

func (m *MockCodeIssuer) Issue(ctx context.Context, email string) (*IssueResult, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email)
	}
	return &IssueResult{Notified: true}, nil
}

// MockSettingsRepository implements SettingsStore for testing
type MockSettingsRepository struct {
	GetByUserIDFunc    func(ctx context.Context, userID string) (*models.UserSettings, error)
	CreateFunc         func(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error)
	UpdateSectionsFunc func(ctx context.Context, userID string, set bson.M) error
	DeleteByUserIDFunc func(ctx context.Context, userID string) error
}

func (m *MockSettingsRepository) GetByUserID(ctx context.Context, userID string) (*models.UserSettings, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, models.ErrNotFound
}

func (m *MockSettingsRepository) Create(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, settings)
	}
	return settings, nil
}

func (m *MockSettingsRepository) UpdateSections(ctx context.Context, userID string, set bson.M) error {
	if m.UpdateSectionsFunc != nil {
		return m.UpdateSectionsFunc(ctx, userID, set)
	}
	return nil
}

func (m *MockSettingsRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

// MockCartRepository implements CartStore for testing. Without overrides it
// behaves like an in-memory single-user store.
type MockCartRepository struct {
	GetByUserIDFunc func(ctx context.Context, userID string) (*models.Cart, error)
	SaveFunc        func(ctx context.Context, cart *models.Cart) error
	DeleteFunc      func(ctx context.Context, userID string) error
	Saved           *models.Cart
}

func (m *MockCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	if m.Saved != nil {
		return m.Saved, nil
	}
	return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
}

func (m *MockCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, cart)
	}
	m.Saved = cart
	return nil
}

func (m *MockCartRepository) Delete(ctx context.Context, userID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	m.Saved = nil
	return nil
}

// NewTestUser creates a verified test user
func NewTestUser(email, name string) *models.User {
	now := time.Now()
	verifiedAt := now.Add(-24 * time.Hour)
	return &models.User{
		ID:    primitive.NewObjectID(),
		Email: email,
		Name:  name,
		Role:  "user",
		Verification: models.VerificationState{
			VerifiedAt: &verifiedAt,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestUserUnverified creates a user with no code issued yet
func NewTestUserUnverified(email, name string) *models.User {
	user := NewTestUser(email, name)
	user.Verification = models.VerificationState{}
	return user
}

// NewTestUserWithCode creates an unverified user holding an outstanding code
func NewTestUserWithCode(email, code string, sentAt time.Time, expiry time.Duration) *models.User {
	user := NewTestUserUnverified(email, "Test User")
	expiresAt := sentAt.Add(expiry)
	user.Verification = models.VerificationState{
		Code:       code,
		ExpiresAt:  &expiresAt,
		LastSentAt: &sentAt,
	}
	return user
}

// NewTokenClaims creates valid token claims
func NewTokenClaims(userID, email, tokenType string) *models.TokenClaims {
	now := time.Now()
	expiresAt := now.Add(15 * time.Minute)
	return &models.TokenClaims{
		Type:   tokenType,
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        fmt.Sprintf("jti_%s_%d", userID, now.Unix()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

// NewTestProduct creates a catalog product for cart and favorite tests
func NewTestProduct(id, name string, price float64) models.Product {
	return models.Product{
		ID:      id,
		Name:    name,
		Price:   price,
		Images:  []string{"/images/" + id + ".jpg"},
		Colors:  []string{"Siyah", "Bej"},
		Sizes:   []string{"36", "37", "38"},
		InStock: true,
	}
}
