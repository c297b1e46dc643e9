package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp    *firebase.App
	FirebaseClient *messaging.Client
	once           sync.Once
	initErr        error
	isInitialized  bool
)

// InitFirebase initializes the Firebase Admin SDK and FCM client
// (singleton). Missing credentials disable push notifications without
// failing startup.
func InitFirebase() error {
	if isInitialized {
		return initErr
	}

	once.Do(func() {
		ctx := context.Background()

		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = os.Getenv("FCM_CREDENTIALS_PATH")
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		projectID := os.Getenv("FIREBASE_PROJECT_ID")
		if projectID == "" {
			projectID = os.Getenv("FCM_PROJECT_ID")
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Printf("⚠️ Firebase credentials not found at %s, push notifications disabled", credentialsPath)
			isInitialized = true
			initErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		if projectID == "" {
			log.Println("⚠️ FCM_PROJECT_ID not set, push notifications disabled")
			isInitialized = true
			initErr = fmt.Errorf("FCM_PROJECT_ID is required for FCM")
			return
		}

		opt := option.WithCredentialsFile(credentialsPath)
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
		if err != nil {
			log.Printf("❌ Error initializing Firebase app: %v", err)
			isInitialized = true
			initErr = fmt.Errorf("firebase app initialization failed: %v", err)
			return
		}

		fcmClient, err := app.Messaging(ctx)
		if err != nil {
			log.Printf("❌ Error getting FCM client: %v", err)
			FirebaseApp = app
			isInitialized = true
			initErr = fmt.Errorf("FCM client initialization failed: %v", err)
			return
		}

		log.Printf("✅ Firebase initialized for project %s", projectID)
		FirebaseApp = app
		FirebaseClient = fcmClient
		isInitialized = true
	})

	return initErr
}

// IsFCMEnabled reports whether the messaging client is available.
func IsFCMEnabled() bool {
	return FirebaseClient != nil
}

// GetInitError returns the initialization error if any.
func GetInitError() error {
	return initErr
}
