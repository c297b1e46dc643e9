package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snehapatil02/campus-event-management-backend/config"
	"github.com/snehapatil02/campus-event-management-backend/database"
	"github.com/snehapatil02/campus-event-management-backend/internal/auditlog"
	"github.com/snehapatil02/campus-event-management-backend/internal/auth"
	"github.com/snehapatil02/campus-event-management-backend/internal/event"
	"github.com/snehapatil02/campus-event-management-backend/internal/feedback"
	"github.com/snehapatil02/campus-event-management-backend/internal/notification"
	"github.com/snehapatil02/campus-event-management-backend/internal/registration"
	"github.com/snehapatil02/campus-event-management-backend/internal/reports"
	"github.com/snehapatil02/campus-event-management-backend/internal/userprofile"
	"github.com/snehapatil02/campus-event-management-backend/middleware"
)

// Setup wires repositories, services and handlers onto the router.
func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ===== Audit log =====
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)

	// ===== Auth =====
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// ===== Notifications =====
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo, cfg)
	notifHandler := notification.NewHandler(notifSvc, cfg)

	// EventSource cannot send an Authorization header
	api.GET("/notifications/stream-token", notifHandler.StreamWithToken)

	// ===== Events =====
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, auditSvc, notifSvc)
	eventHandler := event.NewHandler(eventSvc)

	// ===== Profiles =====
	profileRepo := userprofile.NewRepository(database.DB)
	profileSvc := userprofile.NewService(profileRepo)
	profileHandler := userprofile.NewHandler(profileSvc)

	// ===== Registrations =====
	regRepo := registration.NewRepository(database.DB)
	regSvc := registration.NewService(regRepo, eventRepo, auditSvc, notifSvc)
	regSvc.Prefs = profileSvc
	regHandler := registration.NewHandler(regSvc)

	// ===== Feedback =====
	fbRepo := feedback.NewRepository(database.DB)
	fbSvc := feedback.NewService(fbRepo, eventRepo, regRepo, auditSvc, notifSvc)
	fbHandler := feedback.NewHandler(fbSvc)

	// ===== Reports =====
	reportsRepo := reports.NewRepository(database.DB)
	reportsSvc := reports.NewService(reportsRepo, reports.NewReportExporter())
	reportsHandler := reports.NewHandler(reportsSvc)

	// ===== Protected routes =====
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	protected.GET("/auth/me", authHandler.Me)

	// Profile + notification preferences
	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)

	organizerOnly := middleware.RBACMiddleware(auth.RoleOrganizer)

	// Events
	protected.GET("/events", eventHandler.ListEvents)
	protected.GET("/events/upcoming", eventHandler.UpcomingEvents)
	protected.GET("/events/mine", organizerOnly, eventHandler.MyEvents)
	protected.GET("/events/stats", organizerOnly, eventHandler.Stats)
	protected.GET("/events/:id", eventHandler.GetEvent)
	protected.POST("/events", organizerOnly, eventHandler.CreateEvent)
	protected.PUT("/events/:id", organizerOnly, eventHandler.UpdateEvent)
	protected.DELETE("/events/:id", organizerOnly, eventHandler.DeleteEvent)

	// Registrations
	protected.POST("/events/:id/registrations", regHandler.Register)
	protected.DELETE("/events/:id/registrations", regHandler.Unregister)
	protected.GET("/events/:id/registrations", organizerOnly, regHandler.ListByEvent)
	protected.GET("/events/:id/registrations/me", regHandler.IsRegistered)
	protected.GET("/registrations/mine", regHandler.MyRegistrations)
	protected.PATCH("/registrations/:id/attendance", organizerOnly, regHandler.MarkAttendance)
	protected.POST("/attendance/scan", organizerOnly, regHandler.ScanToken)

	// Feedback
	protected.POST("/events/:id/feedback", fbHandler.SubmitFeedback)
	protected.GET("/events/:id/feedback", fbHandler.ListByEvent)
	protected.GET("/events/:id/feedback/me", fbHandler.MyFeedback)

	// Notifications
	protected.GET("/notifications", notifHandler.List)
	protected.GET("/notifications/unread-count", notifHandler.UnreadCount)
	protected.GET("/notifications/stream", notifHandler.Stream)
	protected.PATCH("/notifications/read-all", notifHandler.MarkAllRead)
	protected.PATCH("/notifications/:id/read", notifHandler.MarkRead)
	protected.POST("/notifications/device-tokens", notifHandler.RegisterDeviceToken)
	protected.DELETE("/notifications/device-tokens", notifHandler.RemoveDeviceToken)

	// Reports (organizer exports)
	reportRoutes := protected.Group("/reports")
	reportRoutes.Use(organizerOnly)
	{
		reportRoutes.GET("/events/:id/roster", reportsHandler.RosterReport)
		reportRoutes.GET("/events/:id/feedback", reportsHandler.FeedbackReport)
		reportRoutes.GET("/audit-logs", reportsHandler.AuditLogReport)
	}
}
