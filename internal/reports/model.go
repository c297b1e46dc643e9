package reports

import "time"

// Report types
const (
	ReportTypeRoster    = "roster"
	ReportTypeFeedback  = "feedback"
	ReportTypeAuditLogs = "audit_logs"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Date range presets for the audit log report
const (
	DateRangeDaily    = "daily"
	DateRangeWeekly   = "weekly"
	DateRangeMonthly  = "monthly"
	DateRangeSemester = "semester"
	DateRangeYearly   = "yearly"
	DateRangeCustom   = "custom"
)

// RosterReportRow is one registration on the attendance sheet.
type RosterReportRow struct {
	RegistrationID uint       `json:"registration_id"`
	UserName       string     `json:"user_name"`
	UserEmail      string     `json:"user_email"`
	RegisteredAt   time.Time  `json:"registered_at"`
	Attended       bool       `json:"attended"`
	AttendedAt     *time.Time `json:"attended_at,omitempty"`
}

// FeedbackReportRow is one feedback entry in the summary.
type FeedbackReportRow struct {
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLogReportRow is one audit trail entry.
type AuditLogReportRow struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id"`
	EventID   *uint     `json:"event_id"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	Details   string    `json:"details"`
}

// ReportData carries everything an exporter needs for one report.
type ReportData struct {
	EventTitle    string
	Roster        []RosterReportRow
	Feedback      []FeedbackReportRow
	AverageRating float64
	AuditLogs     []AuditLogReportRow
}
