package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snehapatil02/campus-event-management-backend/internal/auditlog"
	"github.com/snehapatil02/campus-event-management-backend/internal/auth"
	"github.com/snehapatil02/campus-event-management-backend/internal/event"
	"github.com/snehapatil02/campus-event-management-backend/internal/notification"
)

// PreferenceSource reports whether a user opted in to confirmation
// emails. Nil means default preferences (opted in).
type PreferenceSource interface {
	RegistrationConfirmationsEnabled(ctx context.Context, userID uint) bool
}

// Service wraps business logic for event registrations and QR check-in
type Service struct {
	Repo      *Repository
	EventRepo *event.Repository
	AuditSvc  auditlog.Service
	NotifSvc  notification.Service
	Prefs     PreferenceSource

	// per-event mutexes supplement the row lock so concurrent
	// registrations for the same event serialise in-process too
	mu         sync.Mutex
	eventLocks map[uint]*sync.Mutex
}

func NewService(r *Repository, eventRepo *event.Repository, auditSvc auditlog.Service, notifSvc notification.Service) *Service {
	return &Service{
		Repo:       r,
		EventRepo:  eventRepo,
		AuditSvc:   auditSvc,
		NotifSvc:   notifSvc,
		eventLocks: make(map[uint]*sync.Mutex),
	}
}

func (s *Service) lockEvent(eventID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.eventLocks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.eventLocks[eventID] = l
	}
	return l
}

// newToken builds the QR payload carried on the ticket. Event id keeps
// it debuggable; the UUID and timestamp make it unguessable and unique.
func newToken(eventID uint) string {
	return fmt.Sprintf("QR-%d-%s-%d", eventID, uuid.New().String(), time.Now().UnixNano())
}

// ===========================
// 🎯 Register for an Event
func (s *Service) Register(ctx context.Context, eventID uint, user auth.User, ip string) (*Registration, error) {
	l := s.lockEvent(eventID)
	l.Lock()
	defer l.Unlock()

	ev, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	reg := &Registration{
		EventID:   eventID,
		UserID:    user.ID,
		UserName:  user.FullName,
		UserEmail: user.Email,
		QRCode:    newToken(eventID),
	}

	if err := s.Repo.CreateWithCapacityCheck(ctx, reg); err != nil {
		s.audit(ctx, user.ID, &eventID, auditlog.ActionRegistrationCreated, map[string]interface{}{
			"event_id": eventID,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.audit(ctx, user.ID, &eventID, auditlog.ActionRegistrationCreated, map[string]interface{}{
		"event_id":        eventID,
		"event_title":     ev.Title,
		"registration_id": reg.ID,
	}, ip, "success")

	if s.NotifSvc != nil {
		eid := eventID
		_ = s.NotifSvc.Notify(ctx, user.ID, notification.TypeRegistration,
			"Registration Confirmed",
			"You are registered for "+ev.Title+". Show your QR code at the venue to check in.",
			&eid,
		)
		// Best-effort confirmation mail; the channel logs and skips
		// when SMTP is not configured.
		if s.Prefs == nil || s.Prefs.RegistrationConfirmationsEnabled(ctx, user.ID) {
			s.sendConfirmationEmail(user, ev, reg)
		}
	}

	return reg, nil
}

func (s *Service) sendConfirmationEmail(user auth.User, ev *event.Event, reg *Registration) {
	_ = s.NotifSvc.SendEmail(
		[]string{user.Email},
		"Registration Confirmed: "+ev.Title,
		"Hi "+user.FullName+",\n\nYou are registered for "+ev.Title+
			" on "+ev.EventDate.Format("2006-01-02")+" at "+ev.Venue+
			".\n\nYour check-in code: "+reg.QRCode+"\n",
	)
}

// ===========================
// ❌ Unregister from an Event
// Removing an absent registration is a no-op, not an error. So is
// unregistering from an event that no longer exists, since a deleted
// event carries no registrations either.
func (s *Service) Unregister(ctx context.Context, eventID, userID uint, ip string) error {
	removed, err := s.Repo.DeleteByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}

	title := ""
	if ev, err := s.EventRepo.GetEventByID(eventID); err == nil {
		title = ev.Title
	}

	s.audit(ctx, userID, &eventID, auditlog.ActionRegistrationRemoved, map[string]interface{}{
		"event_id":    eventID,
		"event_title": title,
	}, ip, "success")

	if s.NotifSvc != nil {
		eid := eventID
		message := "Your registration has been removed."
		if title != "" {
			message = "Your registration for " + title + " has been removed."
		}
		_ = s.NotifSvc.Notify(ctx, userID, notification.TypeUpdate,
			"Registration Cancelled", message, &eid)
	}

	return nil
}

// ===========================
// 🛠 Mark Attendance (organizer roster toggle, no notification)
func (s *Service) MarkAttendance(ctx context.Context, registrationID uint, attended bool, actorID uint, ip string) (*Registration, error) {
	reg, err := s.Repo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	reg.Attended = attended
	if attended {
		now := time.Now()
		reg.AttendedAt = &now
	} else {
		reg.AttendedAt = nil
	}

	if err := s.Repo.UpdateAttendance(ctx, reg); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &reg.EventID, auditlog.ActionAttendanceMarked, map[string]interface{}{
		"registration_id": reg.ID,
		"user_id":         reg.UserID,
		"attended":        attended,
	}, ip, "success")

	return reg, nil
}

// ===========================
// 📷 Mark Attendance by QR token (scanner flow)
// Failures are reported in the result so the scanner can show them;
// only infrastructure problems come back as errors.
func (s *Service) MarkAttendanceByToken(ctx context.Context, token string, actorID uint, ip string) (*AttendanceResult, error) {
	reg, err := s.Repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrRegistrationNotFound) {
			return &AttendanceResult{
				Success: false,
				Message: "Invalid QR code. Registration not found.",
			}, nil
		}
		return nil, err
	}

	if reg.Attended {
		return &AttendanceResult{
			Success:      false,
			Message:      "Attendance already marked for this registration.",
			Registration: reg,
		}, nil
	}

	now := time.Now()
	reg.Attended = true
	reg.AttendedAt = &now
	if err := s.Repo.UpdateAttendance(ctx, reg); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &reg.EventID, auditlog.ActionAttendanceMarked, map[string]interface{}{
		"registration_id": reg.ID,
		"user_id":         reg.UserID,
		"via":             "qr",
	}, ip, "success")

	if s.NotifSvc != nil {
		eid := reg.EventID
		message := "Your attendance has been recorded."
		if ev, err := s.EventRepo.GetEventByID(reg.EventID); err == nil {
			message = "Your attendance at " + ev.Title + " has been recorded."
		}
		_ = s.NotifSvc.Notify(ctx, reg.UserID, notification.TypeUpdate,
			"Attendance Confirmed", message, &eid)
	}

	return &AttendanceResult{
		Success:      true,
		Message:      "Attendance marked for " + reg.UserName + ".",
		Registration: reg,
	}, nil
}

// ===========================
// 🔍 Queries
func (s *Service) ListByEvent(ctx context.Context, eventID uint) ([]Registration, error) {
	return s.Repo.ListByEvent(ctx, eventID)
}

func (s *Service) ListByUser(ctx context.Context, userID uint) ([]Registration, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) IsRegistered(ctx context.Context, eventID, userID uint) (bool, error) {
	return s.Repo.IsRegistered(ctx, eventID, userID)
}

func (s *Service) GetByToken(ctx context.Context, token string) (*Registration, error) {
	return s.Repo.GetByToken(ctx, token)
}

func (s *Service) audit(ctx context.Context, userID uint, eventID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.AuditSvc == nil {
		return
	}
	_ = s.AuditSvc.LogAction(ctx, &userID, eventID, action, details, ip, status)
}
