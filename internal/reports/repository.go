package reports

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/snehapatil02/campus-event-management-backend/internal/event"
)

// ErrEventNotFound is returned when a report targets a missing event.
var ErrEventNotFound = errors.New("event not found")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🔍 Event lookup (title + ownership for the report header)
func (r *Repository) GetEvent(ctx context.Context, eventID uint) (*event.Event, error) {
	var ev event.Event
	err := r.DB.WithContext(ctx).First(&ev, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// ===========================
// 📄 Roster rows for an event
func (r *Repository) RosterRows(ctx context.Context, eventID uint) ([]RosterReportRow, error) {
	var rows []RosterReportRow
	err := r.DB.WithContext(ctx).
		Table("registrations").
		Select("id AS registration_id, user_name, user_email, registered_at, attended, attended_at").
		Where("event_id = ?", eventID).
		Order("registered_at ASC").
		Scan(&rows).Error
	return rows, err
}

// ===========================
// 📄 Feedback rows + average for an event
func (r *Repository) FeedbackRows(ctx context.Context, eventID uint) ([]FeedbackReportRow, float64, error) {
	var rows []FeedbackReportRow
	err := r.DB.WithContext(ctx).
		Table("feedbacks").
		Select("user_name, rating, comment, created_at").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	var avg *float64
	err = r.DB.WithContext(ctx).
		Table("feedbacks").
		Where("event_id = ?", eventID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return nil, 0, err
	}

	average := 0.0
	if avg != nil {
		average = *avg
	}
	return rows, average, nil
}

// ===========================
// 📄 Audit log rows in a date range
func (r *Repository) AuditLogRows(ctx context.Context, start, end time.Time) ([]AuditLogReportRow, error) {
	var rows []AuditLogReportRow
	err := r.DB.WithContext(ctx).
		Table("audit_logs").
		Select("id, user_id, event_id, action, status, ip_address, created_at, details").
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Scan(&rows).Error
	return rows, err
}
