package reports

import (
	"context"
	"errors"
)

// ErrNotOwner is returned when an organizer requests a report for an
// event they do not own.
var ErrNotOwner = errors.New("event belongs to another organizer")

// Service assembles report data and hands it to the exporter
type Service struct {
	Repo     *Repository
	Exporter ReportExporter
}

func NewService(r *Repository, exporter ReportExporter) *Service {
	return &Service{Repo: r, Exporter: exporter}
}

// ===========================
// 📄 Roster report (attendance sheet) for an event
func (s *Service) BuildRosterReport(ctx context.Context, eventID, organizerID uint, format string) ([]byte, string, string, error) {
	ev, err := s.Repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}
	if ev.OrganizerID != organizerID {
		return nil, "", "", ErrNotOwner
	}

	rows, err := s.Repo.RosterRows(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}

	return s.Exporter.Export(ReportTypeRoster, format, ReportData{
		EventTitle: ev.Title,
		Roster:     rows,
	})
}

// ===========================
// 📄 Feedback summary report for an event
func (s *Service) BuildFeedbackReport(ctx context.Context, eventID, organizerID uint, format string) ([]byte, string, string, error) {
	ev, err := s.Repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}
	if ev.OrganizerID != organizerID {
		return nil, "", "", ErrNotOwner
	}

	rows, avg, err := s.Repo.FeedbackRows(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}

	return s.Exporter.Export(ReportTypeFeedback, format, ReportData{
		EventTitle:    ev.Title,
		Feedback:      rows,
		AverageRating: avg,
	})
}

// ===========================
// 📄 Audit log report for a date range
func (s *Service) BuildAuditLogReport(ctx context.Context, dateRange, startStr, endStr, format string) ([]byte, string, string, error) {
	start, end, err := GetDateRange(dateRange, startStr, endStr)
	if err != nil {
		return nil, "", "", err
	}

	rows, err := s.Repo.AuditLogRows(ctx, start, end)
	if err != nil {
		return nil, "", "", err
	}

	return s.Exporter.Export(ReportTypeAuditLogs, format, ReportData{
		AuditLogs: rows,
	})
}
