package reports_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snehapatil02/campus-event-management-backend/internal/auditlog"
	"github.com/snehapatil02/campus-event-management-backend/internal/event"
	"github.com/snehapatil02/campus-event-management-backend/internal/feedback"
	"github.com/snehapatil02/campus-event-management-backend/internal/registration"
	"github.com/snehapatil02/campus-event-management-backend/internal/reports"
)

func newTestService(t *testing.T) (*reports.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&event.Event{},
		&registration.Registration{},
		&feedback.Feedback{},
		&auditlog.AuditLog{},
	))

	return reports.NewService(reports.NewRepository(db), reports.NewReportExporter()), db
}

func seedEventWithRoster(t *testing.T, db *gorm.DB, organizerID uint) *event.Event {
	t.Helper()
	ev := &event.Event{
		Title:       "Reported Event",
		Description: "seeded for tests",
		Category:    event.CategoryTechnical,
		EventDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Venue:       "Hall C",
		Capacity:    100,
		Status:      event.StatusCompleted,
		OrganizerID: organizerID,
	}
	require.NoError(t, db.Create(ev).Error)

	now := time.Now()
	require.NoError(t, db.Create(&registration.Registration{
		EventID: ev.ID, UserID: 10, UserName: "Asha", UserEmail: "asha@campus.edu",
		QRCode: fmt.Sprintf("QR-%d-%s-1", ev.ID, uuid.New().String()),
		Attended: true, AttendedAt: &now,
	}).Error)
	require.NoError(t, db.Create(&registration.Registration{
		EventID: ev.ID, UserID: 11, UserName: "Ravi", UserEmail: "ravi@campus.edu",
		QRCode: fmt.Sprintf("QR-%d-%s-1", ev.ID, uuid.New().String()),
	}).Error)

	require.NoError(t, db.Create(&feedback.Feedback{
		EventID: ev.ID, UserID: 10, UserName: "Asha", Rating: 5, Comment: "great",
	}).Error)

	return ev
}

func TestBuildRosterReport(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	ev := seedEventWithRoster(t, db, 1)

	data, filename, contentType, err := svc.BuildRosterReport(ctx, ev.ID, 1, reports.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.NotEmpty(t, filename)

	text := string(data)
	assert.Contains(t, text, "asha@campus.edu")
	assert.Contains(t, text, "ravi@campus.edu")

	// Another organizer cannot pull the sheet.
	_, _, _, err = svc.BuildRosterReport(ctx, ev.ID, 2, reports.FormatCSV)
	assert.ErrorIs(t, err, reports.ErrNotOwner)

	_, _, _, err = svc.BuildRosterReport(ctx, 9999, 1, reports.FormatCSV)
	assert.ErrorIs(t, err, reports.ErrEventNotFound)
}

func TestBuildFeedbackReport(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	ev := seedEventWithRoster(t, db, 1)

	data, _, _, err := svc.BuildFeedbackReport(ctx, ev.ID, 1, reports.FormatCSV)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "Reported Event")
	assert.Contains(t, text, "5.00")
	assert.Contains(t, text, "great")

	_, _, _, err = svc.BuildFeedbackReport(ctx, ev.ID, 99, reports.FormatCSV)
	assert.ErrorIs(t, err, reports.ErrNotOwner)
}

func TestBuildAuditLogReport(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	uid := uint(1)
	require.NoError(t, db.Create(&auditlog.AuditLog{
		UserID:    &uid,
		Action:    auditlog.ActionEventCreated,
		Status:    "success",
		IPAddress: "127.0.0.1",
	}).Error)

	data, filename, contentType, err := svc.BuildAuditLogReport(
		ctx, reports.DateRangeDaily, "", "", reports.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.NotEmpty(t, filename)
	assert.Contains(t, string(data), auditlog.ActionEventCreated)

	_, _, _, err = svc.BuildAuditLogReport(ctx, reports.DateRangeCustom, "", "", reports.FormatCSV)
	assert.Error(t, err, "custom range needs explicit dates")
}
