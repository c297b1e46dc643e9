package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/snehapatil02/campus-event-management-backend/config"
	"github.com/snehapatil02/campus-event-management-backend/database"
	"github.com/snehapatil02/campus-event-management-backend/internal/auditlog"
	"github.com/snehapatil02/campus-event-management-backend/internal/auth"
	"github.com/snehapatil02/campus-event-management-backend/internal/event"
	"github.com/snehapatil02/campus-event-management-backend/internal/feedback"
	"github.com/snehapatil02/campus-event-management-backend/internal/notification"
	"github.com/snehapatil02/campus-event-management-backend/internal/registration"
	"github.com/snehapatil02/campus-event-management-backend/internal/userprofile"
	"github.com/snehapatil02/campus-event-management-backend/routes"
	"github.com/snehapatil02/campus-event-management-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis (live notification stream; optional)
	if err := utils.InitRedis(); err != nil {
		log.Printf("⚠️ Redis init failed: %v", err)
		log.Println("ℹ️ Continuing without live notification stream")
	}

	// Init Kafka (activity stream; optional)
	utils.InitializeKafka()

	// 🔥 Init Firebase - SINGLE INITIALIZATION POINT
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized successfully")
	} else {
		log.Println("⚠️ Firebase initialized but FCM client unavailable")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&auditlog.AuditLog{},
		&event.Event{},
		&registration.Registration{},
		&feedback.Feedback{},
		&notification.Notification{},
		&notification.DeviceToken{},
		&userprofile.UserProfile{},
	); err != nil {
		log.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Seed starter events so a fresh install has a calendar
	if err := event.SeedSampleEvents(db); err != nil {
		log.Fatalf("❌ Failed to seed events: %v", err)
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "Cache-Control", "Pragma", "Expires"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🚀 Server starting on port %s\n", port)
	if utils.IsFCMEnabled() {
		fmt.Println("✅ Firebase Cloud Messaging enabled")
	} else {
		fmt.Println("ℹ️ Firebase Cloud Messaging disabled")
		if err := utils.GetInitError(); err != nil {
			fmt.Printf("   Reason: %v\n", err)
		}
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
