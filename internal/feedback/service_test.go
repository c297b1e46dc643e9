package feedback_test

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

	"github.com/snehapatil02/campus-event-management-backend/config"
	"github.com/snehapatil02/campus-event-management-backend/internal/event"
	"github.com/snehapatil02/campus-event-management-backend/internal/feedback"
	"github.com/snehapatil02/campus-event-management-backend/internal/notification"
	"github.com/snehapatil02/campus-event-management-backend/internal/registration"
)

// ===========================
// 🧪 Test Harness

type testEnv struct {
	db       *gorm.DB
	svc      *feedback.Service
	notifSvc notification.Service
}

func newTestEnv(t *testing.T) *testEnv {
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
		&notification.Notification{},
		&notification.DeviceToken{},
	))

	notifSvc := notification.NewService(notification.NewRepository(db), &config.Config{})
	svc := feedback.NewService(
		feedback.NewRepository(db),
		event.NewRepository(db),
		registration.NewRepository(db),
		nil,
		notifSvc,
	)

	return &testEnv{db: db, svc: svc, notifSvc: notifSvc}
}

func (env *testEnv) seedEvent(t *testing.T, title, status string, organizerID uint) *event.Event {
	t.Helper()
	ev := &event.Event{
		Title:       title,
		Description: "seeded for tests",
		Category:    event.CategorySeminar,
		EventDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Venue:       "Hall B",
		Capacity:    100,
		Status:      status,
		OrganizerID: organizerID,
	}
	require.NoError(t, env.db.Create(ev).Error)
	return ev
}

func (env *testEnv) seedRegistration(t *testing.T, eventID, userID uint, attended bool) {
	t.Helper()
	reg := &registration.Registration{
		EventID:   eventID,
		UserID:    userID,
		UserName:  fmt.Sprintf("User %d", userID),
		UserEmail: fmt.Sprintf("user%d@campus.edu", userID),
		QRCode:    fmt.Sprintf("QR-%d-%s-1", eventID, uuid.New().String()),
		Attended:  attended,
	}
	if attended {
		now := time.Now()
		reg.AttendedAt = &now
	}
	require.NoError(t, env.db.Create(reg).Error)
}

// ===========================
// 🎯 Submission Rules

func TestSubmitFeedbackRatingBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Rated Event", event.StatusCompleted, 1)

	for _, rating := range []int{0, -1, 6, 10} {
		_, err := env.svc.SubmitFeedback(ctx, ev.ID, 5, "User 5",
			&feedback.SubmitFeedbackRequest{Rating: rating}, "")
		assert.ErrorIs(t, err, feedback.ErrInvalidInput, "rating %d", rating)
	}
}

func TestSubmitFeedbackUnknownEvent(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.SubmitFeedback(context.Background(), 9999, 5, "User 5",
		&feedback.SubmitFeedbackRequest{Rating: 4}, "")
	assert.ErrorIs(t, err, feedback.ErrEventNotFound)
}

func TestSubmitFeedbackRequiresAttendanceOrCompletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Ongoing Event", event.StatusOngoing, 1)

	// Registered but never checked in — rejected while the event runs.
	env.seedRegistration(t, ev.ID, 5, false)
	_, err := env.svc.SubmitFeedback(ctx, ev.ID, 5, "User 5",
		&feedback.SubmitFeedbackRequest{Rating: 4}, "")
	assert.ErrorIs(t, err, feedback.ErrInvalidInput)

	// An attendee may submit immediately.
	env.seedRegistration(t, ev.ID, 6, true)
	f, err := env.svc.SubmitFeedback(ctx, ev.ID, 6, "User 6",
		&feedback.SubmitFeedbackRequest{Rating: 5, Comment: "great talk"}, "")
	require.NoError(t, err)
	assert.Equal(t, 5, f.Rating)
	assert.Equal(t, "great talk", f.Comment)
}

func TestSubmitFeedbackCompletedEventOpensToAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Finished Event", event.StatusCompleted, 1)

	// No registration at all, but the event has completed.
	f, err := env.svc.SubmitFeedback(ctx, ev.ID, 9, "User 9",
		&feedback.SubmitFeedbackRequest{Rating: 3}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, f.Rating)
}

func TestSubmitFeedbackDuplicateKeepsFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Once Event", event.StatusCompleted, 1)

	first, err := env.svc.SubmitFeedback(ctx, ev.ID, 5, "User 5",
		&feedback.SubmitFeedbackRequest{Rating: 4, Comment: "original"}, "")
	require.NoError(t, err)

	_, err = env.svc.SubmitFeedback(ctx, ev.ID, 5, "User 5",
		&feedback.SubmitFeedbackRequest{Rating: 1, Comment: "revised"}, "")
	assert.ErrorIs(t, err, feedback.ErrDuplicateFeedback)

	stored, err := env.svc.GetUserFeedbackForEvent(ctx, ev.ID, 5)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, "original", stored.Comment)
}

func TestSubmitFeedbackNotifiesOrganizer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Reviewed Event", event.StatusCompleted, 77)

	_, err := env.svc.SubmitFeedback(ctx, ev.ID, 5, "Priya",
		&feedback.SubmitFeedbackRequest{Rating: 4}, "")
	require.NoError(t, err)

	items, err := env.notifSvc.ListByUser(ctx, 77, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "New Feedback", items[0].Title)
	assert.Equal(t, notification.TypeFeedback, items[0].Type)
	assert.Equal(t, "Priya rated Reviewed Event 4/5.", items[0].Message)
}

// ===========================
// 📊 Aggregates

func TestAverageRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Averaged Event", event.StatusCompleted, 1)

	avg, err := env.svc.AverageRating(ctx, ev.ID)
	require.NoError(t, err)
	assert.Zero(t, avg, "no feedback yet")

	for i, rating := range []int{5, 3, 4} {
		userID := uint(100 + i)
		_, err := env.svc.SubmitFeedback(ctx, ev.ID, userID,
			fmt.Sprintf("User %d", userID),
			&feedback.SubmitFeedbackRequest{Rating: rating}, "")
		require.NoError(t, err)
	}

	avg, err = env.svc.AverageRating(ctx, ev.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 0.001)
}

func TestListByEventNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Listed Event", event.StatusCompleted, 1)

	// Insert directly so the timestamps are spaced predictably.
	base := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, env.db.Create(&feedback.Feedback{
			EventID:   ev.ID,
			UserID:    uint(200 + i),
			UserName:  fmt.Sprintf("User %d", 200+i),
			Rating:    3,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	items, err := env.svc.ListByEvent(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, uint(202), items[0].UserID)
	assert.Equal(t, uint(200), items[2].UserID)
}
