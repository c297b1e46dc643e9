package feedback

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Feedback
func (r *Repository) Create(ctx context.Context, f *Feedback) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

// ===========================
// 🔍 Get a user's feedback for an event (nil when none)
func (r *Repository) GetByEventAndUser(ctx context.Context, eventID, userID uint) (*Feedback, error) {
	var f Feedback
	err := r.DB.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// ===========================
// 📄 List feedback for an event, newest first
func (r *Repository) ListByEvent(ctx context.Context, eventID uint) ([]Feedback, error) {
	var items []Feedback
	err := r.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

// ===========================
// 📊 Average rating for an event, 0 when no feedback exists
func (r *Repository) AverageRating(ctx context.Context, eventID uint) (float64, error) {
	var avg *float64
	err := r.DB.WithContext(ctx).Model(&Feedback{}).
		Where("event_id = ?", eventID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
