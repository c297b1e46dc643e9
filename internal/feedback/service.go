package feedback

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/snehapatil02/campus-event-management-backend/internal/auditlog"
	"github.com/snehapatil02/campus-event-management-backend/internal/event"
	"github.com/snehapatil02/campus-event-management-backend/internal/notification"
	"github.com/snehapatil02/campus-event-management-backend/internal/registration"
)

// Service wraps business logic for post-event feedback
type Service struct {
	Repo      *Repository
	EventRepo *event.Repository
	RegRepo   *registration.Repository
	AuditSvc  auditlog.Service
	NotifSvc  notification.Service
}

func NewService(r *Repository, eventRepo *event.Repository, regRepo *registration.Repository, auditSvc auditlog.Service, notifSvc notification.Service) *Service {
	return &Service{
		Repo:      r,
		EventRepo: eventRepo,
		RegRepo:   regRepo,
		AuditSvc:  auditSvc,
		NotifSvc:  notifSvc,
	}
}

// ===========================
// 🎯 Submit Feedback
// Eligibility is enforced here, not left to the UI: the submitter must
// have attended, or the event must have completed.
func (s *Service) SubmitFeedback(ctx context.Context, eventID, userID uint, userName string, req *SubmitFeedbackRequest, ip string) (*Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	ev, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	existing, err := s.Repo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// The first submission stands.
		return nil, ErrDuplicateFeedback
	}

	if ev.Status != event.StatusCompleted {
		attended := false
		regs, err := s.RegRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, r := range regs {
			if r.EventID == eventID && r.Attended {
				attended = true
				break
			}
		}
		if !attended {
			return nil, fmt.Errorf("%w: feedback requires attendance or a completed event", ErrInvalidInput)
		}
	}

	f := &Feedback{
		EventID:  eventID,
		UserID:   userID,
		UserName: userName,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.Repo.Create(ctx, f); err != nil {
		return nil, err
	}

	if s.AuditSvc != nil {
		_ = s.AuditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionFeedbackSubmitted, map[string]interface{}{
			"event_id": eventID,
			"rating":   req.Rating,
		}, ip, "success")
	}

	if s.NotifSvc != nil && ev.OrganizerID != 0 {
		eid := eventID
		_ = s.NotifSvc.Notify(ctx, ev.OrganizerID, notification.TypeFeedback,
			"New Feedback",
			fmt.Sprintf("%s rated %s %d/5.", userName, ev.Title, req.Rating),
			&eid,
		)
	}

	return f, nil
}

// ===========================
// 📄 List feedback for an event
func (s *Service) ListByEvent(ctx context.Context, eventID uint) ([]Feedback, error) {
	return s.Repo.ListByEvent(ctx, eventID)
}

// ===========================
// 🔍 A user's feedback for an event (nil when none)
func (s *Service) GetUserFeedbackForEvent(ctx context.Context, eventID, userID uint) (*Feedback, error) {
	return s.Repo.GetByEventAndUser(ctx, eventID, userID)
}

// ===========================
// 📊 Average rating
func (s *Service) AverageRating(ctx context.Context, eventID uint) (float64, error) {
	return s.Repo.AverageRating(ctx, eventID)
}
