package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error

	// Device tokens for push
	SaveDeviceToken(ctx context.Context, token *DeviceToken) error
	ActiveDeviceTokens(ctx context.Context, userID uint) ([]string, error)
	RemoveDeviceToken(ctx context.Context, userID uint, token string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ------------------------------
// Notifications
// ------------------------------

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error) {
	var items []Notification
	if limit <= 0 {
		limit = 50
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips is_read once; re-marking an already-read row is a
// no-op, never an error.
func (r *repository) MarkRead(ctx context.Context, id uint, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *repository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// ------------------------------
// ✅ Device Tokens
// ------------------------------

// SaveDeviceToken creates or reactivates a device token
func (r *repository) SaveDeviceToken(ctx context.Context, token *DeviceToken) error {
	var existing DeviceToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", token.UserID, token.Token).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		token.LastUsedAt = time.Now()
		return r.db.WithContext(ctx).Create(token).Error
	}
	if err != nil {
		return err
	}

	existing.IsActive = true
	existing.LastUsedAt = time.Now()
	existing.DeviceType = token.DeviceType
	existing.DeviceName = token.DeviceName
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *repository) ActiveDeviceTokens(ctx context.Context, userID uint) ([]string, error) {
	var tokens []DeviceToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}

	result := make([]string, len(tokens))
	for i, t := range tokens {
		result[i] = t.Token
	}
	return result, nil
}

func (r *repository) RemoveDeviceToken(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).
		Model(&DeviceToken{}).
		Where("user_id = ? AND token = ?", userID, token).
		Update("is_active", false).Error
}
