package services

import (
	"context"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/nisantasi/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerificationService(users UserRecordStore, mailer Mailer, now time.Time) *VerificationService {
	svc := NewVerificationService(users, mailer, slog.Default(), 15*time.Minute, 60*time.Second)
	svc.now = func() time.Time { return now }
	return svc
}

func TestVerificationService_Issue_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserUnverified("user@example.com", "Test User")

	var saved models.VerificationPatch
	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdateVerificationFunc: func(ctx context.Context, email string, patch models.VerificationPatch) error {
			saved = patch
			return nil
		},
	}
	mockMailer := &MockMailer{}

	svc := newVerificationService(mockUsers, mockMailer, now)
	result, err := svc.Issue(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.True(t, result.Notified)
	assert.Empty(t, result.Warning)

	require.NotNil(t, saved.Code)
	require.NotNil(t, saved.ExpiresAt)
	require.NotNil(t, saved.LastSentAt)
	assert.Equal(t, now.Add(15*time.Minute), *saved.ExpiresAt)
	assert.Equal(t, now, *saved.LastSentAt)
	assert.Nil(t, saved.VerifiedAt)
	assert.False(t, saved.ClearCode)

	require.Len(t, mockMailer.SentCodes, 1)
	assert.Equal(t, *saved.Code, mockMailer.SentCodes[0], "mailed code should match the persisted one")
}

func TestVerificationService_Issue_CodeShape(t *testing.T) {
	sixDigits := regexp.MustCompile(`^[1-9][0-9]{5}$`)
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}

func TestVerificationService_Issue_UserNotFound(t *testing.T) {
	mockUsers := &MockUserRepository{}
	svc := newVerificationService(mockUsers, &MockMailer{}, time.Now())

	_, err := svc.Issue(context.Background(), "missing@example.com")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestVerificationService_Issue_AlreadyVerified(t *testing.T) {
	user := NewTestUser("user@example.com", "Test User")
	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, time.Now())
	_, err := svc.Issue(context.Background(), "user@example.com")

	assert.ErrorIs(t, err, models.ErrAlreadyVerified)
}

func TestVerificationService_Issue_NoCooldownOnInitialIssue(t *testing.T) {
	// Issue ignores the cooldown even when a code was just sent.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserWithCode("user@example.com", "123456", now.Add(-5*time.Second), 15*time.Minute)

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, now)
	result, err := svc.Issue(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.True(t, result.Notified)
}

func TestVerificationService_Issue_MailFailureDowngradedToWarning(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserUnverified("user@example.com", "Test User")

	persisted := false
	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdateVerificationFunc: func(ctx context.Context, email string, patch models.VerificationPatch) error {
			persisted = true
			return nil
		},
	}
	mockMailer := &MockMailer{
		SendVerificationCodeFunc: func(ctx context.Context, email, code, displayName string) error {
			return models.ErrInternalServer
		},
	}

	svc := newVerificationService(mockUsers, mockMailer, now)
	result, err := svc.Issue(context.Background(), "user@example.com")

	require.NoError(t, err, "delivery failure must not fail issuance")
	assert.True(t, persisted, "code must be persisted before delivery is attempted")
	assert.False(t, result.Notified)
	assert.NotEmpty(t, result.Warning)
}

func TestVerificationService_Resend_WithinCooldown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserWithCode("user@example.com", "123456", now.Add(-30*time.Second), 15*time.Minute)

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	mockMailer := &MockMailer{}

	svc := newVerificationService(mockUsers, mockMailer, now)
	_, err := svc.Resend(context.Background(), "user@example.com")

	assert.ErrorIs(t, err, models.ErrResendCooldown)
	assert.Empty(t, mockMailer.SentCodes, "no mail on a rate limited resend")
}

func TestVerificationService_Resend_AfterCooldown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserWithCode("user@example.com", "123456", now.Add(-61*time.Second), 15*time.Minute)

	var saved models.VerificationPatch
	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdateVerificationFunc: func(ctx context.Context, email string, patch models.VerificationPatch) error {
			saved = patch
			return nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, now)
	result, err := svc.Resend(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.True(t, result.Notified)
	require.NotNil(t, saved.Code)
	assert.Equal(t, now, *saved.LastSentAt, "resend restarts the cooldown window")
}

func TestVerificationService_Validate_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserWithCode("user@example.com", "123456", now.Add(-5*time.Minute), 15*time.Minute)

	var saved models.VerificationPatch
	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdateVerificationFunc: func(ctx context.Context, email string, patch models.VerificationPatch) error {
			saved = patch
			return nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, now)
	err := svc.Validate(context.Background(), "user@example.com", "123456")

	require.NoError(t, err)
	require.NotNil(t, saved.VerifiedAt)
	assert.Equal(t, now, *saved.VerifiedAt)
	assert.True(t, saved.ClearCode, "code and expiry must be cleared on success")
	assert.Nil(t, saved.Code)
}

func TestVerificationService_Validate_JustBeforeExpiry(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserWithCode("user@example.com", "123456", issuedAt, 15*time.Minute)

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, issuedAt.Add(15*time.Minute-time.Second))
	err := svc.Validate(context.Background(), "user@example.com", "123456")

	assert.NoError(t, err)
}

func TestVerificationService_Validate_AtExpiryInstant(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserWithCode("user@example.com", "123456", issuedAt, 15*time.Minute)

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, issuedAt.Add(15*time.Minute))
	err := svc.Validate(context.Background(), "user@example.com", "123456")

	assert.ErrorIs(t, err, models.ErrCodeExpired)
}

func TestVerificationService_Validate_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserWithCode("user@example.com", "123456", issuedAt, 15*time.Minute)

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdateVerificationFunc: func(ctx context.Context, email string, patch models.VerificationPatch) error {
			t.Fatal("expired validation must not touch the record")
			return nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, issuedAt.Add(15*time.Minute+time.Second))
	err := svc.Validate(context.Background(), "user@example.com", "123456")

	assert.ErrorIs(t, err, models.ErrCodeExpired)
}

func TestVerificationService_Validate_Mismatch(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserWithCode("user@example.com", "123456", now.Add(-time.Minute), 15*time.Minute)

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, now)

	assert.ErrorIs(t, svc.Validate(context.Background(), "user@example.com", "654321"), models.ErrCodeMismatch)
	// Unlimited attempts: the right code still works after mismatches.
	assert.ErrorIs(t, svc.Validate(context.Background(), "user@example.com", "000000"), models.ErrCodeMismatch)
	assert.NoError(t, svc.Validate(context.Background(), "user@example.com", "123456"))
}

func TestVerificationService_Validate_OldCodeInvalidAfterResend(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// The record only ever holds the latest code.
	user := NewTestUserWithCode("user@example.com", "222222", now.Add(-time.Minute), 15*time.Minute)

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, now)

	assert.ErrorIs(t, svc.Validate(context.Background(), "user@example.com", "111111"), models.ErrCodeMismatch)
	assert.NoError(t, svc.Validate(context.Background(), "user@example.com", "222222"))
}

func TestVerificationService_Validate_NoCodeOutstanding(t *testing.T) {
	user := NewTestUserUnverified("user@example.com", "Test User")
	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, time.Now())
	err := svc.Validate(context.Background(), "user@example.com", "123456")

	assert.ErrorIs(t, err, models.ErrNoCodeOutstanding)
}

func TestVerificationService_Validate_SecondValidateAfterSuccess(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user := NewTestUserWithCode("user@example.com", "123456", now.Add(-time.Minute), 15*time.Minute)

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdateVerificationFunc: func(ctx context.Context, email string, patch models.VerificationPatch) error {
			// Mirror the store: clear the code pair and mark verified.
			user.Verification.Code = ""
			user.Verification.ExpiresAt = nil
			user.Verification.VerifiedAt = patch.VerifiedAt
			return nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, now)

	require.NoError(t, svc.Validate(context.Background(), "user@example.com", "123456"))
	// The cleared code cannot be replayed.
	assert.ErrorIs(t, svc.Validate(context.Background(), "user@example.com", "123456"), models.ErrNoCodeOutstanding)
}

func TestVerificationService_Validate_UserNotFound(t *testing.T) {
	svc := newVerificationService(&MockUserRepository{}, &MockMailer{}, time.Now())

	err := svc.Validate(context.Background(), "missing@example.com", "123456")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestVerificationService_Status(t *testing.T) {
	verified := NewTestUser("verified@example.com", "Verified User")
	unverified := NewTestUserUnverified("pending@example.com", "Pending User")

	mockUsers := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			if email == verified.Email {
				return verified, nil
			}
			return unverified, nil
		},
	}

	svc := newVerificationService(mockUsers, &MockMailer{}, time.Now())

	ok, err := svc.Status(context.Background(), "verified@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Status(context.Background(), "pending@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}
