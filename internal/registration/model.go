package registration

import (
	"errors"
	"time"
)

// Sentinel errors surfaced by the registration service.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrEventFull            = errors.New("event is fully booked")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
)

// ============================
// 🔷 GORM Registration Model
// One row per (event, user); the unique index is the last line of
// defence against double registration, behind the locked transaction.
type Registration struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EventID      uint       `gorm:"not null;uniqueIndex:idx_event_user;index" json:"event_id"`
	UserID       uint       `gorm:"not null;uniqueIndex:idx_event_user;index" json:"user_id"`
	UserName     string     `gorm:"type:varchar(150);not null" json:"user_name"`
	UserEmail    string     `gorm:"type:varchar(150);not null" json:"user_email"`
	RegisteredAt time.Time  `gorm:"autoCreateTime" json:"registered_at"`
	Attended     bool       `gorm:"default:false" json:"attended"`
	AttendedAt   *time.Time `json:"attended_at,omitempty"`
	QRCode       string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"qr_code"`
}

// AttendanceResult is the contract returned by the QR check-in flow.
// Failures are part of the result, not errors: the scanner UI shows
// the message either way.
type AttendanceResult struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	Registration *Registration `json:"registration,omitempty"`
}
