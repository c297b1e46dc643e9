package registration_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snehapatil02/campus-event-management-backend/config"
	"github.com/snehapatil02/campus-event-management-backend/internal/auth"
	"github.com/snehapatil02/campus-event-management-backend/internal/event"
	"github.com/snehapatil02/campus-event-management-backend/internal/notification"
	"github.com/snehapatil02/campus-event-management-backend/internal/registration"
)

// ===========================
// 🧪 Test Harness

type testEnv struct {
	db       *gorm.DB
	svc      *registration.Service
	notifSvc notification.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// One shared in-memory DB per test; a single connection keeps
	// sqlite's single-writer model honest under concurrent tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&auth.User{},
		&event.Event{},
		&registration.Registration{},
		&notification.Notification{},
		&notification.DeviceToken{},
	))

	notifSvc := notification.NewService(notification.NewRepository(db), &config.Config{})
	svc := registration.NewService(
		registration.NewRepository(db),
		event.NewRepository(db),
		nil,
		notifSvc,
	)

	return &testEnv{db: db, svc: svc, notifSvc: notifSvc}
}

func (env *testEnv) seedEvent(t *testing.T, title string, capacity int) *event.Event {
	t.Helper()
	ev := &event.Event{
		Title:         title,
		Description:   "seeded for tests",
		Category:      event.CategoryWorkshop,
		EventDate:     time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Venue:         "Lab 101",
		Capacity:      capacity,
		Status:        event.StatusUpcoming,
		OrganizerID:   1,
		OrganizerName: "Tech Club",
	}
	require.NoError(t, env.db.Create(ev).Error)
	return ev
}

func testUser(id uint) auth.User {
	return auth.User{
		ID:       id,
		FullName: fmt.Sprintf("User %d", id),
		Email:    fmt.Sprintf("user%d@campus.edu", id),
		Role:     auth.RoleParticipant,
	}
}

// ===========================
// 🎯 Registration

func TestRegisterIssuesQRCodeAndNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "ML Workshop", 50)

	reg, err := env.svc.Register(ctx, ev.ID, testUser(7), "127.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, reg)

	assert.Equal(t, ev.ID, reg.EventID)
	assert.Equal(t, uint(7), reg.UserID)
	assert.Equal(t, "User 7", reg.UserName)
	assert.False(t, reg.Attended)
	assert.Nil(t, reg.AttendedAt)
	assert.True(t, strings.HasPrefix(reg.QRCode, fmt.Sprintf("QR-%d-", ev.ID)),
		"QR code should embed the event id: %s", reg.QRCode)

	items, err := env.notifSvc.ListByUser(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, notification.TypeRegistration, items[0].Type)
	assert.Equal(t, "Registration Confirmed", items[0].Title)
	assert.Contains(t, items[0].Message, "ML Workshop")
	require.NotNil(t, items[0].EventID)
	assert.Equal(t, ev.ID, *items[0].EventID)
}

func TestRegisterUnknownEvent(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Register(context.Background(), 9999, testUser(1), "")
	assert.ErrorIs(t, err, registration.ErrEventNotFound)
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Tech Symposium", 100)

	_, err := env.svc.Register(ctx, ev.ID, testUser(3), "")
	require.NoError(t, err)

	_, err = env.svc.Register(ctx, ev.ID, testUser(3), "")
	assert.ErrorIs(t, err, registration.ErrAlreadyRegistered)

	var count int64
	require.NoError(t, env.db.Model(&registration.Registration{}).
		Where("event_id = ?", ev.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "duplicate attempt must not add a row")
}

// A full event rejects new registrations, and unregistering frees the
// seat for the next person.
func TestCapacityOneSeatRecycling(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Solo Seminar", 1)

	alice := testUser(1)
	bob := testUser(2)

	_, err := env.svc.Register(ctx, ev.ID, alice, "")
	require.NoError(t, err)

	_, err = env.svc.Register(ctx, ev.ID, bob, "")
	assert.ErrorIs(t, err, registration.ErrEventFull)

	// Still her own duplicate, not a capacity problem.
	_, err = env.svc.Register(ctx, ev.ID, alice, "")
	assert.ErrorIs(t, err, registration.ErrAlreadyRegistered)

	require.NoError(t, env.svc.Unregister(ctx, ev.ID, alice.ID, ""))

	reg, err := env.svc.Register(ctx, ev.ID, bob, "")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, reg.UserID)

	registered, err := env.svc.IsRegistered(ctx, ev.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestUnregisterAbsentIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Quiet Event", 10)

	require.NoError(t, env.svc.Unregister(ctx, ev.ID, 42, ""))

	items, err := env.notifSvc.ListByUser(ctx, 42, 10)
	require.NoError(t, err)
	assert.Empty(t, items, "no-op unregister must not notify")
}

func TestUnregisterUnknownEventIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// The event never existed; there is nothing to remove, so nothing
	// to report either.
	require.NoError(t, env.svc.Unregister(ctx, 9999, 42, ""))

	items, err := env.notifSvc.ListByUser(ctx, 42, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUnregisterSurvivesEventDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Vanishing Event", 10)

	_, err := env.svc.Register(ctx, ev.ID, testUser(8), "")
	require.NoError(t, err)

	// The event row disappears out from under the registration.
	require.NoError(t, env.db.Delete(&event.Event{}, ev.ID).Error)

	require.NoError(t, env.svc.Unregister(ctx, ev.ID, 8, ""))

	registered, err := env.svc.IsRegistered(ctx, ev.ID, 8)
	require.NoError(t, err)
	assert.False(t, registered)

	// The cancellation notice still goes out, just without a title.
	items, err := env.notifSvc.ListByUser(ctx, 8, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Registration Cancelled", items[0].Title)
	assert.Equal(t, "Your registration has been removed.", items[0].Message)
}

func TestUnregisterNotifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Basketball Finals", 10)

	_, err := env.svc.Register(ctx, ev.ID, testUser(5), "")
	require.NoError(t, err)
	require.NoError(t, env.svc.Unregister(ctx, ev.ID, 5, ""))

	items, err := env.notifSvc.ListByUser(ctx, 5, 10)
	require.NoError(t, err)
	require.Len(t, items, 2) // confirmation + cancellation, newest first
	assert.Equal(t, "Registration Cancelled", items[0].Title)
	assert.Equal(t, notification.TypeUpdate, items[0].Type)
}

// ===========================
// ⚔️ Concurrency: 100 users race for 5 seats

func TestConcurrentRegistrationCapacity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Contested Workshop", 5)

	const attempts = 100
	var (
		wg            sync.WaitGroup
		successCount  int32
		fullCount     int32
		unexpectedErr int32
	)

	wg.Add(attempts)
	for i := 1; i <= attempts; i++ {
		go func(userID uint) {
			defer wg.Done()
			_, err := env.svc.Register(ctx, ev.ID, testUser(userID), "")
			switch {
			case err == nil:
				atomic.AddInt32(&successCount, 1)
			case errors.Is(err, registration.ErrEventFull):
				atomic.AddInt32(&fullCount, 1)
			default:
				atomic.AddInt32(&unexpectedErr, 1)
				t.Logf("unexpected error for user %d: %v", userID, err)
			}
		}(uint(i))
	}
	wg.Wait()

	assert.EqualValues(t, 5, successCount, "exactly capacity seats handed out")
	assert.EqualValues(t, 95, fullCount, "everyone else turned away")
	assert.EqualValues(t, 0, unexpectedErr)

	// The database must agree with the counters.
	var stored int64
	require.NoError(t, env.db.Model(&registration.Registration{}).
		Where("event_id = ?", ev.ID).Count(&stored).Error)
	assert.EqualValues(t, 5, stored)
}

// ===========================
// 📷 QR Check-in

func TestMarkAttendanceByToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Cultural Fest", 20)

	reg, err := env.svc.Register(ctx, ev.ID, testUser(9), "")
	require.NoError(t, err)

	// First scan succeeds.
	res, err := env.svc.MarkAttendanceByToken(ctx, reg.QRCode, 1, "")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Attendance marked for User 9.", res.Message)
	require.NotNil(t, res.Registration)
	assert.True(t, res.Registration.Attended)
	assert.NotNil(t, res.Registration.AttendedAt)

	// Second scan of the same code is rejected but still identifies
	// the registration.
	res, err = env.svc.MarkAttendanceByToken(ctx, reg.QRCode, 1, "")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Attendance already marked for this registration.", res.Message)
	require.NotNil(t, res.Registration)
	assert.Equal(t, reg.ID, res.Registration.ID)

	// A made-up code carries no registration at all.
	res, err = env.svc.MarkAttendanceByToken(ctx, "QR-0-bogus-0", 1, "")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid QR code. Registration not found.", res.Message)
	assert.Nil(t, res.Registration)
}

func TestMarkAttendanceByTokenNotifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Hack Night", 20)

	reg, err := env.svc.Register(ctx, ev.ID, testUser(11), "")
	require.NoError(t, err)

	_, err = env.svc.MarkAttendanceByToken(ctx, reg.QRCode, 2, "")
	require.NoError(t, err)

	items, err := env.notifSvc.ListByUser(ctx, 11, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Attendance Confirmed", items[0].Title)
	assert.Contains(t, items[0].Message, "Hack Night")
}

func TestMarkAttendanceRosterToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Roster Event", 20)

	reg, err := env.svc.Register(ctx, ev.ID, testUser(4), "")
	require.NoError(t, err)

	updated, err := env.svc.MarkAttendance(ctx, reg.ID, true, 1, "")
	require.NoError(t, err)
	assert.True(t, updated.Attended)
	require.NotNil(t, updated.AttendedAt)

	// Toggling back clears the timestamp too.
	updated, err = env.svc.MarkAttendance(ctx, reg.ID, false, 1, "")
	require.NoError(t, err)
	assert.False(t, updated.Attended)
	assert.Nil(t, updated.AttendedAt)
}

func TestListByEventOrdering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.seedEvent(t, "Ordered Event", 20)

	for i := 1; i <= 3; i++ {
		_, err := env.svc.Register(ctx, ev.ID, testUser(uint(i)), "")
		require.NoError(t, err)
	}

	regs, err := env.svc.ListByEvent(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, regs, 3)
	assert.Equal(t, uint(1), regs[0].UserID)
	assert.Equal(t, uint(3), regs[2].UserID)
}
