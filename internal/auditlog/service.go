package auditlog

import (
	"context"
	"encoding/json"

	"github.com/snehapatil02/campus-event-management-backend/utils"
)

type Service interface {
	LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]AuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction records an audit row and mirrors it onto the Kafka
// activity stream. The stream publish is best-effort; the row is the
// durable record.
func (s *service) LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := &AuditLog{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Details:   detailsJSON,
		IPAddress: ip,
		Status:    status,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return err
	}

	activity := map[string]interface{}{
		"action":  action,
		"status":  status,
		"details": details,
	}
	if userID != nil {
		activity["user_id"] = *userID
	}
	if eventID != nil {
		activity["event_id"] = *eventID
	}
	utils.PublishActivity(action, activity)

	return nil
}

func (s *service) ListByUser(ctx context.Context, userID uint, limit int) ([]AuditLog, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}
