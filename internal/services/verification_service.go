package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/nisantasi/storefront/internal/models"
	pkglogger "github.com/nisantasi/storefront/pkg/logger"
)

// UserRecordStore is the persistence boundary the verification manager needs:
// lookup by email plus a partial-update-with-unset primitive over the
// verification fields.
type UserRecordStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateVerification(ctx context.Context, email string, patch models.VerificationPatch) error
}

// Mailer delivers a verification code to the user's address.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code, displayName string) error
}

// IssueResult reports the outcome of issuing a verification code. A persisted
// code with Notified=false is still valid; Warning carries the delivery
// failure for the caller to surface.
type IssueResult struct {
	Notified bool   `json:"notified"`
	Warning  string `json:"warning,omitempty"`
}

// VerificationService issues, validates, and expires one-time email
// verification codes stored on the user record.
type VerificationService struct {
	users    UserRecordStore
	mailer   Mailer
	logger   *slog.Logger
	expiry   time.Duration
	cooldown time.Duration
	now      func() time.Time
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(users UserRecordStore, mailer Mailer, logger *slog.Logger, expiry, cooldown time.Duration) *VerificationService {
	return &VerificationService{
		users:    users,
		mailer:   mailer,
		logger:   logger,
		expiry:   expiry,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Issue generates a fresh code for a not-yet-verified user and mails it.
// Initial issuance at registration is not subject to the resend cooldown.
func (s *VerificationService) Issue(ctx context.Context, email string) (*IssueResult, error) {
	return s.issue(ctx, email, false)
}

// Resend re-issues a code, overwriting any outstanding one. Rejected with
// ErrResendCooldown when called within the cooldown window of the last send.
func (s *VerificationService) Resend(ctx context.Context, email string) (*IssueResult, error) {
	return s.issue(ctx, email, true)
}

func (s *VerificationService) issue(ctx context.Context, email string, enforceCooldown bool) (*IssueResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to load user for code issuance",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if user.Verification.Verified() {
		return nil, models.ErrAlreadyVerified
	}

	now := s.now()
	if enforceCooldown && user.Verification.InCooldownAt(now, s.cooldown) {
		s.logger.Info("verification resend rate limited",
			slog.String("email", pkglogger.SanitizedEmail(email)))
		return nil, models.ErrResendCooldown
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("failed to generate verification code", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	expiresAt := now.Add(s.expiry)
	patch := models.VerificationPatch{
		Code:       &code,
		ExpiresAt:  &expiresAt,
		LastSentAt: &now,
	}
	if err := s.users.UpdateVerification(ctx, email, patch); err != nil {
		s.logger.Error("failed to persist verification code",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// Delivery failure is a warning, never an error: the persisted code stays
	// valid for support-assisted verification.
	result := &IssueResult{Notified: true}
	if err := s.mailer.SendVerificationCode(ctx, email, code, user.Name); err != nil {
		s.logger.Warn("verification email delivery failed",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		result.Notified = false
		result.Warning = "verification email could not be delivered"
	}

	s.logger.Info("verification code issued",
		slog.String("email", pkglogger.SanitizedEmail(email)),
		slog.Bool("notified", result.Notified))

	return result, nil
}

// Validate checks a submitted code against the outstanding one. On match the
// code/expiry pair is cleared and the email marked verified; the cleared code
// cannot be reused. Checks run in a fixed order so every rejection has a
// distinct reason.
func (s *VerificationService) Validate(ctx context.Context, email, submitted string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to load user for code validation",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		return models.ErrInternalServer
	}

	if !user.Verification.Outstanding() {
		return models.ErrNoCodeOutstanding
	}

	now := s.now()
	if user.Verification.ExpiredAt(now) {
		s.logger.Info("verification code expired",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Time("expired_at", *user.Verification.ExpiresAt))
		return models.ErrCodeExpired
	}

	// Exact string compare, no normalization. Attempts are not counted.
	if submitted != user.Verification.Code {
		return models.ErrCodeMismatch
	}

	patch := models.VerificationPatch{
		VerifiedAt: &now,
		ClearCode:  true,
	}
	if err := s.users.UpdateVerification(ctx, email, patch); err != nil {
		s.logger.Error("failed to mark email verified",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("email verified", slog.String("email", pkglogger.SanitizedEmail(email)))
	return nil
}

// Status reports whether the given email is verified.
func (s *VerificationService) Status(ctx context.Context, email string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user.Verification.Verified(), nil
}

// generateCode draws a 6-digit code uniformly from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
