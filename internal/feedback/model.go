package feedback

import (
	"errors"
	"time"
)

// Sentinel errors surfaced by the feedback service.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateFeedback = errors.New("feedback already submitted for this event")
)

// ============================
// 🔷 GORM Feedback Model
// One row per (event, user); resubmission never overwrites.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_user_feedback;index" json:"event_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_event_user_feedback" json:"user_id"`
	UserName  string    `gorm:"type:varchar(150);not null" json:"user_name"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ============================
// 🟡 Submit Feedback Request
type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}
