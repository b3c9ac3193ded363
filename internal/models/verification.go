package models

import "time"

// VerificationPhase enumerates the email verification lifecycle of a user.
type VerificationPhase int

const (
	// VerificationUnissued means no code has been issued and the email is not verified.
	VerificationUnissued VerificationPhase = iota
	// VerificationOutstanding means a code and its expiry are set. The code may
	// already be past its expiry; that is only observable by timestamp comparison.
	VerificationOutstanding
	// VerificationVerified is terminal: VerifiedAt is set and the code fields are cleared.
	VerificationVerified
)

func (p VerificationPhase) String() string {
	switch p {
	case VerificationOutstanding:
		return "outstanding"
	case VerificationVerified:
		return "verified"
	default:
		return "unissued"
	}
}

// VerificationState holds the email verification fields embedded in a user
// document. Code and ExpiresAt are always set and cleared as a pair.
// VerifiedAt being non-nil is the sole source of truth for "email verified".
type VerificationState struct {
	Code       string     `bson:"verificationCode,omitempty" json:"-"`
	ExpiresAt  *time.Time `bson:"verificationCodeExpiry,omitempty" json:"-"`
	LastSentAt *time.Time `bson:"lastVerificationSent,omitempty" json:"-"`
	VerifiedAt *time.Time `bson:"emailVerified" json:"emailVerified"`
}

// Phase reports which lifecycle state the fields encode.
func (v VerificationState) Phase() VerificationPhase {
	if v.VerifiedAt != nil {
		return VerificationVerified
	}
	if v.Code != "" && v.ExpiresAt != nil {
		return VerificationOutstanding
	}
	return VerificationUnissued
}

// Verified reports whether the email has been verified.
func (v VerificationState) Verified() bool {
	return v.VerifiedAt != nil
}

// Outstanding reports whether a code/expiry pair is currently set.
func (v VerificationState) Outstanding() bool {
	return v.Code != "" && v.ExpiresAt != nil
}

// ExpiredAt reports whether the outstanding code is invalid at the given
// instant. The expiry instant itself already counts as expired.
func (v VerificationState) ExpiredAt(now time.Time) bool {
	if v.ExpiresAt == nil {
		return true
	}
	return !now.Before(*v.ExpiresAt)
}

// InCooldownAt reports whether a resend at the given instant would fall inside
// the cooldown window measured from the last issuance.
func (v VerificationState) InCooldownAt(now time.Time, cooldown time.Duration) bool {
	if v.LastSentAt == nil {
		return false
	}
	return now.Sub(*v.LastSentAt) < cooldown
}

// VerificationPatch is a partial update of the verification fields on a user
// record. Nil pointers leave a field untouched; ClearCode unsets the
// code/expiry pair so the two fields always move together.
type VerificationPatch struct {
	Code       *string
	ExpiresAt  *time.Time
	LastSentAt *time.Time
	VerifiedAt *time.Time
	ClearCode  bool
}
