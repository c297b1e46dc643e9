package event

import (
	"errors"
	"time"
)

// Sentinel errors surfaced by the event service.
var (
	ErrNotFound     = errors.New("event not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Event categories (closed set).
const (
	CategoryAcademic  = "academic"
	CategoryCultural  = "cultural"
	CategorySports    = "sports"
	CategoryTechnical = "technical"
	CategoryWorkshop  = "workshop"
	CategorySeminar   = "seminar"
	CategoryOther     = "other"
)

// Event lifecycle statuses (closed set).
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidCategory reports whether c is one of the known event categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryAcademic, CategoryCultural, CategorySports,
		CategoryTechnical, CategoryWorkshop, CategorySeminar, CategoryOther:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known event statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Category       string     `gorm:"type:varchar(30);not null;index" json:"category"`
	EventDate      time.Time  `gorm:"not null;index" json:"date"`
	EventTime      *time.Time `json:"time,omitempty"`
	Venue          string     `gorm:"type:text" json:"venue"`
	Capacity       int        `gorm:"not null" json:"capacity"`
	Status         string     `gorm:"type:varchar(20);not null;default:upcoming;index" json:"status"`
	OrganizerID    uint       `gorm:"not null;index" json:"organizer_id"`
	OrganizerName  string     `gorm:"type:varchar(150)" json:"organizer_name"`
	OrganizerEmail string     `gorm:"type:varchar(150)" json:"organizer_email,omitempty"`
	ImageURL       string     `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	RegisteredCount int `gorm:"-" json:"registered_count"`
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	EventDate   string `json:"date" binding:"required"` // 🛠 string format: "2006-01-02"
	EventTime   string `json:"time,omitempty"`          // 🛠 string format: "15:04"
	Venue       string `json:"venue" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ============================
// 🟠 Update Event Request (partial merge — nil fields untouched)
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	EventDate   *string `json:"date,omitempty"` // 🛠 string format: "2006-01-02"
	EventTime   *string `json:"time,omitempty"` // 🛠 string format: "15:04"
	Venue       *string `json:"venue,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Status      *string `json:"status,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}
