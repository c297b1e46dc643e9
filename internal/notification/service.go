package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/snehapatil02/campus-event-management-backend/config"
	"github.com/snehapatil02/campus-event-management-backend/utils"
)

// ErrInvalidType is returned when a caller passes a notification type
// outside the closed enum.
var ErrInvalidType = errors.New("invalid notification type")

// Channel is a side delivery mechanism (email, push). The in-app row
// in Postgres is always written first and is the source of truth;
// channels are best-effort.
type Channel interface {
	Send(recipients []string, subject, body string) error
}

type Service interface {
	// Notify stores one in-app notification and fans it out to the
	// live stream and push channel. Called only by the event,
	// registration and feedback services.
	Notify(ctx context.Context, userID uint, ntype, title, message string, eventID *uint) error

	ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error

	// SendEmail delivers through the SMTP channel; no-op when SMTP is
	// not configured.
	SendEmail(to []string, subject, body string) error

	// Device token management for push
	RegisterDeviceToken(ctx context.Context, userID uint, token, deviceType, deviceName string) error
	RemoveDeviceToken(ctx context.Context, userID uint, token string) error
}

type service struct {
	repo  Repository
	email Channel
	push  Channel
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:  repo,
		email: NewEmailSender(cfg),
		push:  NewFCMChannel(),
	}
}

func (s *service) Notify(ctx context.Context, userID uint, ntype, title, message string, eventID *uint) error {
	if !ValidType(ntype) {
		return ErrInvalidType
	}

	item := &Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		EventID: eventID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}

	s.publishLive(item)
	s.pushToDevices(ctx, item)
	return nil
}

// publishLive mirrors the stored row onto the per-user Redis channel
// consumed by the SSE stream.
func (s *service) publishLive(item *Notification) {
	if utils.RedisClient == nil {
		return
	}

	payload, _ := json.Marshal(item)
	channel := fmt.Sprintf("notifications:user:%d", item.UserID)
	if err := utils.RedisClient.Publish(utils.Ctx, channel, string(payload)).Err(); err != nil {
		log.Printf("⚠️ Redis publish failed for user %d: %v", item.UserID, err)
	}
}

func (s *service) pushToDevices(ctx context.Context, item *Notification) {
	tokens, err := s.repo.ActiveDeviceTokens(ctx, item.UserID)
	if err != nil || len(tokens) == 0 {
		return
	}
	if err := s.push.Send(tokens, item.Title, item.Message); err != nil {
		log.Printf("⚠️ Push delivery failed for user %d: %v", item.UserID, err)
	}
}

func (s *service) ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, id uint, userID uint) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *service) SendEmail(to []string, subject, body string) error {
	return s.email.Send(to, subject, body)
}

func (s *service) RegisterDeviceToken(ctx context.Context, userID uint, token, deviceType, deviceName string) error {
	if token == "" {
		return errors.New("device token is required")
	}
	return s.repo.SaveDeviceToken(ctx, &DeviceToken{
		UserID:     userID,
		Token:      token,
		DeviceType: deviceType,
		DeviceName: deviceName,
		IsActive:   true,
	})
}

func (s *service) RemoveDeviceToken(ctx context.Context, userID uint, token string) error {
	return s.repo.RemoveDeviceToken(ctx, userID, token)
}
