package registration

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/snehapatil02/campus-event-management-backend/internal/event"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Registration with capacity check
//
// The naive read-then-insert is racy: two transactions can both see a
// free seat before either commits, overbooking the event. The event
// row is therefore locked with SELECT ... FOR UPDATE so concurrent
// attempts serialise on it; the duplicate check and capacity guard run
// under that lock inside the same transaction.
func (r *Repository) CreateWithCapacityCheck(ctx context.Context, reg *Registration) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// ── Step 1: lock the event row ──
		q := tx.Model(&event.Event{})
		if tx.Dialector.Name() != "sqlite" {
			// sqlite has no row locks; its single-writer model plus
			// the service-level mutex covers the test database
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var ev event.Event
		if err := q.First(&ev, reg.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		// ── Step 2: duplicate check ──
		var dup int64
		if err := tx.Model(&Registration{}).
			Where("event_id = ? AND user_id = ?", reg.EventID, reg.UserID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrAlreadyRegistered
		}

		// ── Step 3: capacity guard ──
		var count int64
		if err := tx.Model(&Registration{}).
			Where("event_id = ?", reg.EventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(ev.Capacity) {
			return ErrEventFull
		}

		// ── Step 4: insert — visible to others only after commit ──
		return tx.Create(reg).Error
	})
}

// ===========================
// ❌ Delete by event+user, reports whether a row was removed
func (r *Repository) DeleteByEventAndUser(ctx context.Context, eventID, userID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&Registration{})
	return res.RowsAffected > 0, res.Error
}

// ===========================
// 🔍 Lookups
func (r *Repository) GetByID(ctx context.Context, id uint) (*Registration, error) {
	var reg Registration
	err := r.DB.WithContext(ctx).First(&reg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *Repository) GetByToken(ctx context.Context, token string) (*Registration, error) {
	var reg Registration
	err := r.DB.WithContext(ctx).Where("qr_code = ?", token).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// ===========================
// 📄 List registrations for an event (organizer roster)
func (r *Repository) ListByEvent(ctx context.Context, eventID uint) ([]Registration, error) {
	var regs []Registration
	err := r.DB.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at ASC, id ASC").
		Find(&regs).Error
	return regs, err
}

// ===========================
// 📄 List registrations for a user (their tickets)
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]Registration, error) {
	var regs []Registration
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("registered_at DESC, id DESC").
		Find(&regs).Error
	return regs, err
}

// ===========================
// 🔍 Is the user registered for the event?
func (r *Repository) IsRegistered(ctx context.Context, eventID, userID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&Registration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

// ===========================
// 🛠 Persist attendance flags
func (r *Repository) UpdateAttendance(ctx context.Context, reg *Registration) error {
	return r.DB.WithContext(ctx).Model(reg).
		Select("attended", "attended_at").
		Updates(map[string]interface{}{
			"attended":    reg.Attended,
			"attended_at": reg.AttendedAt,
		}).Error
}
