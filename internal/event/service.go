package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/snehapatil02/campus-event-management-backend/internal/auditlog"
	"github.com/snehapatil02/campus-event-management-backend/internal/notification"
)

// Service wraps business logic for campus events
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
	NotifSvc notification.Service
}

// NewService initializes a new Service with audit logging
func NewService(r *Repository, auditSvc auditlog.Service, notifSvc notification.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
		NotifSvc: notifSvc,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest, organizerID uint, organizerName, organizerEmail, ip string) (*Event, error) {
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be greater than zero", ErrInvalidInput)
	}
	if !ValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	// 🔄 Parse EventDate
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrInvalidInput)
	}

	// 🔄 Parse EventTime (optional)
	var eventTimePtr *time.Time
	if req.EventTime != "" {
		parsedTime, err := time.Parse("15:04", req.EventTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid time format, use HH:MM", ErrInvalidInput)
		}
		normalizedTime := time.Date(0, 1, 1, parsedTime.Hour(), parsedTime.Minute(), 0, 0, time.UTC)
		eventTimePtr = &normalizedTime
	}

	event := &Event{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		EventDate:      eventDate,
		EventTime:      eventTimePtr,
		Venue:          req.Venue,
		Capacity:       req.Capacity,
		Status:         StatusUpcoming, // new events always start upcoming
		OrganizerID:    organizerID,
		OrganizerName:  organizerName,
		OrganizerEmail: organizerEmail,
		ImageURL:       req.ImageURL,
	}

	if err := s.Repo.CreateEvent(event); err != nil {
		s.audit(ctx, organizerID, nil, auditlog.ActionEventCreated, map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(ctx, organizerID, &event.ID, auditlog.ActionEventCreated, map[string]interface{}{
		"event_id": event.ID,
		"title":    event.Title,
		"category": event.Category,
		"date":     event.EventDate.Format("2006-01-02"),
		"venue":    event.Venue,
		"capacity": event.Capacity,
	}, ip, "success")

	return event, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) GetEventByID(ctx context.Context, id uint) (*Event, error) {
	event, err := s.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// ===========================
// 📄 List Events
func (s *Service) ListEvents(ctx context.Context, limit, offset int, search, category, status string) ([]Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if category != "" && !ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	if status != "" && !ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.Repo.ListEvents(limit, offset, search, category, status)
}

// ===========================
// 📆 Get Upcoming Events
func (s *Service) GetUpcomingEvents(ctx context.Context) ([]Event, error) {
	return s.Repo.GetUpcomingEvents()
}

// ===========================
// 📄 List Events by Organizer
func (s *Service) ListEventsByOrganizer(ctx context.Context, organizerID uint) ([]Event, error) {
	return s.Repo.ListEventsByOrganizer(organizerID)
}

// ===========================
// 📊 Organizer Dashboard Stats
func (s *Service) GetEventStats(ctx context.Context, organizerID uint) (*EventStatsResponse, error) {
	return s.Repo.GetEventStats(organizerID)
}

// ===========================
// 🛠 Update Event (partial merge + registrant fan-out)
func (s *Service) UpdateEvent(ctx context.Context, id uint, req *UpdateEventRequest, userID uint, ip string) (*Event, error) {
	event, err := s.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	wasCancelled := event.Status == StatusCancelled
	changed := false

	if req.Category != nil {
		if !ValidCategory(*req.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		event.Category = *req.Category
		changed = true
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		event.Status = *req.Status
		changed = true
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, fmt.Errorf("%w: capacity must be greater than zero", ErrInvalidInput)
		}
		// Lowering capacity below the current registrant count is
		// allowed; existing registrations keep their seats.
		event.Capacity = *req.Capacity
		changed = true
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrInvalidInput)
		}
		event.EventDate = eventDate
		changed = true
	}
	if req.EventTime != nil {
		if *req.EventTime == "" {
			event.EventTime = nil
		} else {
			parsedTime, err := time.Parse("15:04", *req.EventTime)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid time format, use HH:MM", ErrInvalidInput)
			}
			normalizedTime := time.Date(0, 1, 1, parsedTime.Hour(), parsedTime.Minute(), 0, 0, time.UTC)
			event.EventTime = &normalizedTime
		}
		changed = true
	}
	if req.Title != nil {
		event.Title = *req.Title
		changed = true
	}
	if req.Description != nil {
		event.Description = *req.Description
		changed = true
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
		changed = true
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
		changed = true
	}

	// An empty request touches nothing: no write, no audit row, and
	// nothing for registrants to hear about.
	if !changed {
		return event, nil
	}

	if err := s.Repo.UpdateEvent(event); err != nil {
		s.audit(ctx, userID, &id, auditlog.ActionEventUpdated, map[string]interface{}{
			"event_id": id,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(ctx, userID, &id, auditlog.ActionEventUpdated, map[string]interface{}{
		"event_id": event.ID,
		"title":    event.Title,
		"status":   event.Status,
	}, ip, "success")

	// One notification per registrant. A cancellation transition gets
	// its own type and title.
	cancelled := !wasCancelled && event.Status == StatusCancelled
	if s.NotifSvc != nil {
		registrants, err := s.Repo.RegistrantUserIDs(event.ID)
		if err == nil {
			for _, uid := range registrants {
				eventID := event.ID
				if cancelled {
					_ = s.NotifSvc.Notify(ctx, uid, notification.TypeCancellation,
						"Event Cancelled",
						event.Title+" has been cancelled.",
						&eventID,
					)
				} else {
					_ = s.NotifSvc.Notify(ctx, uid, notification.TypeUpdate,
						"Event Updated",
						"Details for "+event.Title+" have changed. Check the event page for the latest information.",
						&eventID,
					)
				}
			}
		}
	}

	return event, nil
}

// ===========================
// ❌ Delete Event (cascades registrations and feedback)
func (s *Service) DeleteEvent(ctx context.Context, id uint, userID uint, ip string) error {
	event, err := s.Repo.GetEventByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Capture registrants before their rows are removed.
	registrants, err := s.Repo.RegistrantUserIDs(id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteEventCascade(id); err != nil {
		s.audit(ctx, userID, &id, auditlog.ActionEventDeleted, map[string]interface{}{
			"event_id": id,
			"title":    event.Title,
			"error":    err.Error(),
		}, ip, "failure")
		return err
	}

	s.audit(ctx, userID, &id, auditlog.ActionEventDeleted, map[string]interface{}{
		"event_id":    id,
		"title":       event.Title,
		"registrants": len(registrants),
	}, ip, "success")

	if s.NotifSvc != nil {
		for _, uid := range registrants {
			eventID := id
			_ = s.NotifSvc.Notify(ctx, uid, notification.TypeCancellation,
				"Event Deleted",
				event.Title+" has been removed from the calendar.",
				&eventID,
			)
		}
	}

	return nil
}

func (s *Service) audit(ctx context.Context, userID uint, eventID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	_ = s.AuditSvc.LogAction(ctx, &userID, eventID, action, details, ip, status)
}
