package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nisantasi/storefront/internal/models"
	pkgauth "github.com/nisantasi/storefront/pkg/auth"
	pkglogger "github.com/nisantasi/storefront/pkg/logger"
)

// TokenIssuer defines the token operations the auth service needs.
type TokenIssuer interface {
	GenerateAccessToken(userID, email string) (string, error)
	GenerateRefreshToken(userID, email string) (string, error)
	ValidateToken(tokenString string) (*models.TokenClaims, error)
}

// UserCreator is the persistence boundary for registration and login.
type UserCreator interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// CodeIssuer issues verification codes at registration time.
type CodeIssuer interface {
	Issue(ctx context.Context, email string) (*IssueResult, error)
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Password        string
	AcceptMarketing bool
}

// UserSummary is the user payload embedded in auth responses.
type UserSummary struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

// AuthResponse is returned on successful login or token refresh.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         UserSummary `json:"user"`
}

// AuthService handles registration and credential auth.
type AuthService struct {
	users        UserCreator
	tokens       TokenIssuer
	verification CodeIssuer
	logger       *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserCreator, tokens TokenIssuer, verification CodeIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:        users,
		tokens:       tokens,
		verification: verification,
		logger:       logger,
	}
}

// Register creates a user account and issues the initial verification code.
// Code delivery failure never fails the registration; the returned IssueResult
// carries the warning.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, *IssueResult, error) {
	if err := pkgauth.ValidatePassword(input.Password); err != nil {
		return nil, nil, models.ErrBadRequest
	}

	// Check if user already exists
	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check for existing user", slog.Any("error", err))
		return nil, nil, models.ErrInternalServer
	}
	if existing != nil {
		return nil, nil, models.ErrConflict
	}

	hashedPassword, err := pkgauth.HashPassword(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, nil, models.ErrInternalServer
	}

	user := &models.User{
		Name:            input.FirstName + " " + input.LastName,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		Phone:           input.Phone,
		PasswordHash:    hashedPassword,
		AcceptMarketing: input.AcceptMarketing,
		Role:            "user",
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, nil, models.ErrInternalServer
	}

	s.logger.Info("user registered",
		slog.String("user_id", created.ID.Hex()),
		slog.String("email", pkglogger.SanitizedEmail(created.Email)))

	// Initial code issuance; a failure here must not undo the registration.
	issue, err := s.verification.Issue(ctx, created.Email)
	if err != nil {
		s.logger.Warn("failed to issue verification code at registration",
			slog.String("user_id", created.ID.Hex()),
			slog.Any("error", err))
		issue = &IssueResult{Notified: false, Warning: "verification code could not be issued"}
	}

	return created, issue, nil
}

// Login authenticates by email and password and returns a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to load user for login", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed",
			slog.String("email", pkglogger.SanitizedEmail(email)))
		return nil, models.ErrUnauthorized
	}

	resp, err := s.tokenResponse(user)
	if err != nil {
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID.Hex()))
	return resp, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	if claims.Type != "refresh" {
		return nil, models.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to load user for token refresh", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	resp, err := s.tokenResponse(user)
	if err != nil {
		return nil, models.ErrInternalServer
	}
	return resp, nil
}

func (s *AuthService) tokenResponse(user *models.User) (*AuthResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID.Hex(), user.Email)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.Any("error", err))
		return nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID.Hex(), user.Email)
	if err != nil {
		s.logger.Error("failed to generate refresh token", slog.Any("error", err))
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		User: UserSummary{
			ID:            user.ID.Hex(),
			Email:         user.Email,
			Name:          user.Name,
			Role:          user.Role,
			EmailVerified: user.EmailVerified(),
		},
	}, nil
}
