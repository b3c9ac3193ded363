package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nisantasi/storefront/internal/models"
	pkgauth "github.com/nisantasi/storefront/pkg/auth"
	"go.mongodb.org/mongo-driver/bson"
)

const maxAvatarBytes = 5 * 1024 * 1024

// UserStore is the persistence boundary for profile management.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateFields(ctx context.Context, id string, set bson.M) (*models.User, error)
	EmailInUse(ctx context.Context, email, excludeID string) (bool, error)
}

// ProfileUpdate carries the optional profile fields. Nil pointers leave the
// field untouched, so "" can clear a field.
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	BirthDate   *string
	Gender      *string
	Avatar      *string
	Bio         *string
	Address     *models.Address
	SocialMedia *models.SocialMedia
	Email       *string

	CurrentPassword string
	NewPassword     string
}

// UserService handles profile business logic.
type UserService struct {
	users  UserStore
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// GetProfile retrieves a user's profile by ID.
func (s *UserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return user, nil
}

// UpdateProfile applies a partial profile update. A password change requires
// the current password; an email change requires the new address to be free
// and resets the verified status.
func (s *UserService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.BirthDate != nil {
		set["birthDate"] = *update.BirthDate
	}
	if update.Gender != nil {
		set["gender"] = *update.Gender
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Address != nil {
		set["address"] = update.Address
	}
	if update.SocialMedia != nil {
		set["socialMedia"] = update.SocialMedia
	}

	// Password change
	if update.CurrentPassword != "" && update.NewPassword != "" {
		if err := pkgauth.ComparePassword(user.PasswordHash, update.CurrentPassword); err != nil {
			return nil, models.ErrUnauthorized
		}
		if err := pkgauth.ValidatePassword(update.NewPassword); err != nil {
			return nil, models.ErrBadRequest
		}
		hashed, err := pkgauth.HashPassword(update.NewPassword)
		if err != nil {
			s.logger.Error("failed to hash new password", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		set["password"] = hashed
	}

	// Email change resets verification
	if update.Email != nil && *update.Email != user.Email {
		inUse, err := s.users.EmailInUse(ctx, *update.Email, id)
		if err != nil {
			s.logger.Error("failed to check email availability", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		if inUse {
			return nil, models.ErrConflict
		}
		set["email"] = *update.Email
		set["emailVerified"] = nil
	}

	updated, err := s.users.UpdateFields(ctx, id, set)
	if err != nil {
		s.logger.Error("failed to update profile", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("profile updated", slog.String("user_id", id))
	return updated, nil
}

// UpdateAvatar stores the uploaded image as a data URL on the user document.
func (s *UserService) UpdateAvatar(ctx context.Context, id, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", models.ErrBadRequest
	}
	if len(data) > maxAvatarBytes {
		return "", models.ErrBadRequest
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", models.ErrBadRequest
	}

	avatarURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))

	if _, err := s.users.UpdateFields(ctx, id, bson.M{"avatar": avatarURL}); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrNotFound
		}
		s.logger.Error("failed to update avatar", slog.String("user_id", id), slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	s.logger.Info("avatar updated", slog.String("user_id", id))
	return avatarURL, nil
}
