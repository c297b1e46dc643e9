package auth

import (
	"time"
)

// Roles a user can hold. Organizers own events; participants register
// for them.
const (
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

// User is the identity record stamped onto registrations, feedback
// and notifications.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:120;not null" json:"full_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;index" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ValidRole reports whether the given role name is one we accept at
// registration time.
func ValidRole(role string) bool {
	return role == RoleOrganizer || role == RoleParticipant
}
