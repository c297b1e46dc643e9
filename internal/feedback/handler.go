package feedback

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
	case errors.Is(err, ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateFeedback):
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
// 🎯 Submit Feedback - POST /events/:id/feedback
func (h *Handler) SubmitFeedback(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	f, err := h.Service.SubmitFeedback(c.Request.Context(), eventID, user.ID, user.FullName, &req, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, f)
}

// ===========================
// 📄 Event Feedback - GET /events/:id/feedback
func (h *Handler) ListByEvent(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	items, err := h.Service.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feedback"})
		return
	}

	avg, err := h.Service.AverageRating(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute average rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback":       items,
		"average_rating": avg,
	})
}

// ===========================
// 🔍 My Feedback - GET /events/:id/feedback/me
func (h *Handler) MyFeedback(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	f, err := h.Service.GetUserFeedbackForEvent(c.Request.Context(), eventID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feedback"})
		return
	}
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no feedback submitted"})
		return
	}

	c.JSON(http.StatusOK, f)
}
