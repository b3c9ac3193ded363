package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nisantasi/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// SettingsStore is the persistence boundary for user settings.
type SettingsStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserSettings, error)
	Create(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error)
	UpdateSections(ctx context.Context, userID string, set bson.M) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// SettingsUpdate carries the optional settings sections. Nil sections are
// left untouched; present sections replace the stored section wholesale.
type SettingsUpdate struct {
	Notifications *models.NotificationSettings `json:"notifications,omitempty"`
	Privacy       *models.PrivacySettings      `json:"privacy,omitempty"`
	Security      *models.SecuritySettings     `json:"security,omitempty"`
	Preferences   *models.PreferenceSettings   `json:"preferences,omitempty"`
}

// SettingsService handles user settings business logic.
type SettingsService struct {
	settings SettingsStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settings SettingsStore, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns the user's settings, creating the default document on first
// read so every user always has settings.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := s.settings.GetByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to get settings", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	created, err := s.settings.Create(ctx, models.DefaultSettings(userID, s.now()))
	if err != nil {
		// Another request may have created them concurrently.
		if errors.Is(err, models.ErrConflict) {
			return s.settings.GetByUserID(ctx, userID)
		}
		s.logger.Error("failed to create default settings", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("default settings created", slog.String("user_id", userID))
	return created, nil
}

// Update applies the provided sections and returns the full updated document.
func (s *SettingsService) Update(ctx context.Context, userID string, update SettingsUpdate) (*models.UserSettings, error) {
	set := bson.M{}
	if update.Notifications != nil {
		set["notifications"] = update.Notifications
	}
	if update.Privacy != nil {
		set["privacy"] = update.Privacy
	}
	if update.Security != nil {
		set["security"] = update.Security
	}
	if update.Preferences != nil {
		set["preferences"] = update.Preferences
	}
	if len(set) == 0 {
		return nil, models.ErrBadRequest
	}

	if err := s.settings.UpdateSections(ctx, userID, set); err != nil {
		s.logger.Error("failed to update settings", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("settings updated", slog.String("user_id", userID))
	return s.Get(ctx, userID)
}

// Reset deletes the stored document and recreates the defaults.
func (s *SettingsService) Reset(ctx context.Context, userID string) (*models.UserSettings, error) {
	if err := s.settings.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to reset settings", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("settings reset", slog.String("user_id", userID))
	return s.Get(ctx, userID)
}
