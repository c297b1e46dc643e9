package userprofile_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snehapatil02/campus-event-management-backend/internal/userprofile"
)

func newTestService(t *testing.T) (*userprofile.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&userprofile.UserProfile{}))

	return userprofile.NewService(userprofile.NewRepository(db)), db
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestGetCreatesDefaultProfile(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	profile, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), profile.UserID)
	assert.True(t, profile.EmailNotifications)
	assert.True(t, profile.EventReminders)
	assert.True(t, profile.RegistrationConfirmations)
	assert.Nil(t, profile.Department)

	// Fetching again reuses the row.
	again, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&userprofile.UserProfile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdatePartialMerge(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	updated, err := svc.Update(ctx, 3, &userprofile.UpdateProfileRequest{
		Department:         strPtr("Computer Science"),
		EmailNotifications: boolPtr(false),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Computer Science", *updated.Department)
	assert.False(t, updated.EmailNotifications)
	// Untouched preferences keep their defaults.
	assert.True(t, updated.EventReminders)
	assert.True(t, updated.RegistrationConfirmations)

	updated, err = svc.Update(ctx, 3, &userprofile.UpdateProfileRequest{
		Phone: strPtr("555-0101"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "Computer Science", *updated.Department, "earlier edits survive")
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "555-0101", *updated.Phone)
}

func TestRegistrationConfirmationsEnabled(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// No profile row yet: default to sending.
	assert.True(t, svc.RegistrationConfirmationsEnabled(ctx, 50))

	_, err := svc.Update(ctx, 50, &userprofile.UpdateProfileRequest{
		RegistrationConfirmations: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, svc.RegistrationConfirmationsEnabled(ctx, 50))

	// Turning the channel off entirely silences confirmations even
	// when the per-type flag is back on.
	_, err = svc.Update(ctx, 50, &userprofile.UpdateProfileRequest{
		RegistrationConfirmations: boolPtr(true),
		EmailNotifications:        boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, svc.RegistrationConfirmationsEnabled(ctx, 50))
}
