package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"

	"github.com/snehapatil02/campus-event-management-backend/utils"
)

// FCMChannel implements Channel for Firebase Cloud Messaging.
// The client is resolved at send time so construction order relative
// to utils.InitFirebase does not matter.
type FCMChannel struct{}

func NewFCMChannel() Channel {
	return &FCMChannel{}
}

// Send pushes the notification to the given device tokens.
func (f *FCMChannel) Send(recipients []string, subject, body string) error {
	client := utils.FirebaseClient
	if client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	ctx := context.Background()

	if len(recipients) == 1 {
		return f.sendSingle(ctx, client, recipients[0], subject, body)
	}
	return f.sendMulticast(ctx, client, recipients, subject, body)
}

func (f *FCMChannel) sendSingle(ctx context.Context, client *messaging.Client, token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				ChannelID:    "campus_event_notifications",
				Priority:     messaging.PriorityHigh,
				DefaultSound: true,
			},
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: title,
				Body:  body,
			},
		},
	}

	if _, err := client.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}
	return nil
}

func (f *FCMChannel) sendMulticast(ctx context.Context, client *messaging.Client, tokens []string, title, body string) error {
	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "campus_event_notifications",
			},
		},
	}

	resp, err := client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM multicast: %v", err)
	}
	if resp.FailureCount > 0 {
		log.Printf("⚠️ FCM multicast: %d/%d deliveries failed", resp.FailureCount, len(tokens))
	}
	return nil
}
