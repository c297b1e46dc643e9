package userprofile

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

// GetByUserID returns the user's profile, or nil when none exists yet.
func (r *Repository) GetByUserID(ctx context.Context, userID uint) (*UserProfile, error) {
	var p UserProfile
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, p *UserProfile) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *Repository) Save(ctx context.Context, p *UserProfile) error {
	return r.DB.WithContext(ctx).Save(p).Error
}
