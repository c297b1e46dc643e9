package notification

import (
	"time"
)

// Notification types. Notifications are generated only by the event,
// registration and feedback services reacting to state changes; users
// can only flip the read flag.
const (
	TypeRegistration = "registration"
	TypeReminder     = "reminder"
	TypeUpdate       = "update"
	TypeCancellation = "cancellation"
	TypeFeedback     = "feedback"
)

// ValidType reports whether t is one of the closed notification types.
func ValidType(t string) bool {
	switch t {
	case TypeRegistration, TypeReminder, TypeUpdate, TypeCancellation, TypeFeedback:
		return true
	}
	return false
}

// Notification - per-user, in-app bell notifications
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	EventID   *uint     `gorm:"index" json:"event_id,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// DeviceToken - stores user device tokens for push notifications
type DeviceToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_user_token" json:"user_id"`
	Token       string    `gorm:"size:255;not null;index:idx_user_token,unique" json:"token"`
	DeviceType  string    `gorm:"size:20" json:"device_type"` // android, ios, web
	DeviceName  string    `gorm:"size:100" json:"device_name"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	LastUsedAt  time.Time `json:"last_used_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
