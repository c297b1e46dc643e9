package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// Actions recorded by the core services.
const (
	ActionEventCreated        = "EVENT_CREATED"
	ActionEventUpdated        = "EVENT_UPDATED"
	ActionEventDeleted        = "EVENT_DELETED"
	ActionRegistrationCreated = "REGISTRATION_CREATED"
	ActionRegistrationRemoved = "REGISTRATION_REMOVED"
	ActionAttendanceMarked    = "ATTENDANCE_MARKED"
	ActionFeedbackSubmitted   = "FEEDBACK_SUBMITTED"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"` // nullable (e.g. failed login)
	EventID   *uint          `gorm:"index" json:"event_id"`
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	Status    string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
