package event

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID with registration count
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	err := r.DB.First(&e, id).Error
	if err != nil {
		return nil, err
	}

	count, err := r.CountRegistrations(id)
	if err != nil {
		return nil, err
	}
	e.RegisteredCount = count

	return &e, nil
}

// ===========================
// 📄 List Events With Pagination, Search & Filters
func (r *Repository) ListEvents(limit, offset int, search, category, status string) ([]Event, error) {
	var events []Event

	query := r.DB.Model(&Event{})

	if search != "" {
		// lower() LIKE instead of ILIKE so the same query runs on
		// both postgres and the sqlite test database
		like := "%" + search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(venue) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.
		Order("event_date ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		count, _ := r.CountRegistrations(events[i].ID)
		events[i].RegisteredCount = count
	}

	return events, nil
}

// ===========================
// 📆 Get Upcoming Events
func (r *Repository) GetUpcomingEvents() ([]Event, error) {
	var events []Event

	err := r.DB.
		Where("status = ? AND event_date >= ?", StatusUpcoming, time.Now().AddDate(0, 0, -1)).
		Order("event_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		count, _ := r.CountRegistrations(events[i].ID)
		events[i].RegisteredCount = count
	}

	return events, nil
}

// ===========================
// 📄 List Events by Organizer
func (r *Repository) ListEventsByOrganizer(organizerID uint) ([]Event, error) {
	var events []Event
	err := r.DB.
		Where("organizer_id = ?", organizerID).
		Order("event_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	for i := range events {
		count, _ := r.CountRegistrations(events[i].ID)
		events[i].RegisteredCount = count
	}

	return events, nil
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// 🔢 Count Registrations for an Event
// Raw table query keeps this package independent of the registration
// package, which imports event for its capacity checks.
func (r *Repository) CountRegistrations(eventID uint) (int, error) {
	var count int64
	err := r.DB.Table("registrations").
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}

// ===========================
// 👥 Registrant User IDs for an Event (notification fan-out)
func (r *Repository) RegistrantUserIDs(eventID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Table("registrations").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// ===========================
// ❌ Delete Event with its registrations and feedback, one transaction
func (r *Repository) DeleteEventCascade(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM registrations WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM feedbacks WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, id).Error
	})
}

// ===========================
// 🔢 Count Events (seed guard)
func (r *Repository) CountEvents() (int64, error) {
	var count int64
	err := r.DB.Model(&Event{}).Count(&count).Error
	return count, err
}

// ===========================
// 📊 Organizer Dashboard Stats
type EventStatsResponse struct {
	TotalEvents        int `json:"total_events"`
	UpcomingEvents     int `json:"upcoming_events"`
	TotalRegistrations int `json:"total_registrations"`
	TotalAttendance    int `json:"total_attendance"`
}

func (r *Repository) GetEventStats(organizerID uint) (*EventStatsResponse, error) {
	var stats EventStatsResponse
	var total, upcoming, registrations, attendance int64

	r.DB.Model(&Event{}).
		Where("organizer_id = ?", organizerID).
		Count(&total)

	r.DB.Model(&Event{}).
		Where("organizer_id = ? AND status = ?", organizerID, StatusUpcoming).
		Count(&upcoming)

	r.DB.Table("registrations").
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("events.organizer_id = ?", organizerID).
		Count(&registrations)

	r.DB.Table("registrations").
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("events.organizer_id = ? AND registrations.attended = ?", organizerID, true).
		Count(&attendance)

	stats.TotalEvents = int(total)
	stats.UpcomingEvents = int(upcoming)
	stats.TotalRegistrations = int(registrations)
	stats.TotalAttendance = int(attendance)

	return &stats, nil
}
