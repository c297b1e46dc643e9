package userprofile

import "time"

// ============================
// 🔷 Student Profile Model
// One row per user, created lazily on first read or update.
type UserProfile struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	Department *string `json:"department,omitempty"`
	YearOfStudy *int   `json:"year_of_study,omitempty"`
	Phone      *string `json:"phone,omitempty"`

	// Notification preferences; all default to on
	EmailNotifications        bool `gorm:"default:true" json:"email_notifications"`
	EventReminders            bool `gorm:"default:true" json:"event_reminders"`
	RegistrationConfirmations bool `gorm:"default:true" json:"registration_confirmations"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ============================
// 🟠 Update Profile Request (partial merge — nil fields untouched)
type UpdateProfileRequest struct {
	Department  *string `json:"department,omitempty"`
	YearOfStudy *int    `json:"year_of_study,omitempty"`
	Phone       *string `json:"phone,omitempty"`

	EmailNotifications        *bool `json:"email_notifications,omitempty"`
	EventReminders            *bool `json:"event_reminders,omitempty"`
	RegistrationConfirmations *bool `json:"registration_confirmations,omitempty"`
}
