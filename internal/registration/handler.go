package registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/snehapatil02/campus-event-management-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrRegistrationNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEventFull), errors.Is(err, ErrAlreadyRegistered):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 🎯 Register - POST /events/:id/registrations
func (h *Handler) Register(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	reg, err := h.Service.Register(c.Request.Context(), eventID, user, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// ===========================
// ❌ Unregister - DELETE /events/:id/registrations
func (h *Handler) Unregister(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	if err := h.Service.Unregister(c.Request.Context(), eventID, user.ID, middleware.GetIPFromContext(c)); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registration removed"})
}

// ===========================
// 📄 Event Roster - GET /events/:id/registrations (organizer)
func (h *Handler) ListByEvent(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	regs, err := h.Service.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": regs})
}

// ===========================
// 📄 My Registrations - GET /registrations/mine
func (h *Handler) MyRegistrations(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	regs, err := h.Service.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": regs})
}

// ===========================
// 🔍 Am I registered? - GET /events/:id/registrations/me
func (h *Handler) IsRegistered(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	registered, err := h.Service.IsRegistered(c.Request.Context(), eventID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registered": registered})
}

// ===========================
// 🛠 Mark Attendance - PATCH /registrations/:id/attendance (organizer)
func (h *Handler) MarkAttendance(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
		return
	}

	var req struct {
		Attended *bool `json:"attended" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	reg, err := h.Service.MarkAttendance(c.Request.Context(), uint(id), *req.Attended, user.ID, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reg)
}

// ===========================
// 📷 Check-in by QR token - POST /attendance/scan (organizer)
func (h *Handler) ScanToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	result, err := h.Service.MarkAttendanceByToken(c.Request.Context(), req.Token, user.ID, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process scan"})
		return
	}

	// The scanner renders the message whether or not the mark stuck.
	c.JSON(http.StatusOK, result)
}
