package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationSettings controls which channels a user is contacted on.
type NotificationSettings struct {
	Email        bool `bson:"email" json:"email"`
	SMS          bool `bson:"sms" json:"sms"`
	Push         bool `bson:"push" json:"push"`
	Marketing    bool `bson:"marketing" json:"marketing"`
	OrderUpdates bool `bson:"orderUpdates" json:"orderUpdates"`
	StockAlerts  bool `bson:"stockAlerts" json:"stockAlerts"`
}

// PrivacySettings holds profile visibility and consent flags.
type PrivacySettings struct {
	ProfileVisibility string `bson:"profileVisibility" json:"profileVisibility"` // "public", "private", "friends"
	DataCollection    bool   `bson:"dataCollection" json:"dataCollection"`
	CookieConsent     bool   `bson:"cookieConsent" json:"cookieConsent"`
	AnalyticsTracking bool   `bson:"analyticsTracking" json:"analyticsTracking"`
}

// SecuritySettings holds account security preferences. TwoFactorAuth is a
// stored preference only; nothing enforces it.
type SecuritySettings struct {
	TwoFactorAuth  bool   `bson:"twoFactorAuth" json:"twoFactorAuth"`
	SessionTimeout string `bson:"sessionTimeout" json:"sessionTimeout"`
	LoginAlerts    bool   `bson:"loginAlerts" json:"loginAlerts"`
	DeviceTracking bool   `bson:"deviceTracking" json:"deviceTracking"`
}

// PreferenceSettings holds locale and display preferences.
type PreferenceSettings struct {
	Language string `bson:"language" json:"language"`
	Currency string `bson:"currency" json:"currency"`
	Timezone string `bson:"timezone" json:"timezone"`
	Theme    string `bson:"theme" json:"theme"` // "light", "dark", "auto"
}

// UserSettings is a document in the userSettings collection, one per user.
type UserSettings struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID        string               `bson:"userId" json:"userId"`
	Notifications NotificationSettings `bson:"notifications" json:"notifications"`
	Privacy       PrivacySettings      `bson:"privacy" json:"privacy"`
	Security      SecuritySettings     `bson:"security" json:"security"`
	Preferences   PreferenceSettings   `bson:"preferences" json:"preferences"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSettings returns the settings document created on first read.
func DefaultSettings(userID string, now time.Time) *UserSettings {
	return &UserSettings{
		UserID: userID,
		Notifications: NotificationSettings{
			Email:        true,
			SMS:          false,
			Push:         true,
			Marketing:    true,
			OrderUpdates: true,
			StockAlerts:  false,
		},
		Privacy: PrivacySettings{
			ProfileVisibility: "public",
			DataCollection:    true,
			CookieConsent:     true,
			AnalyticsTracking: true,
		},
		Security: SecuritySettings{
			TwoFactorAuth:  false,
			SessionTimeout: "30",
			LoginAlerts:    true,
			DeviceTracking: true,
		},
		Preferences: PreferenceSettings{
			Language: "tr",
			Currency: "TRY",
			Timezone: "Europe/Istanbul",
			Theme:    "light",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
