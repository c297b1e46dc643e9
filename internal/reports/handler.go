package reports

import (
	"errors"
	"fmt"
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
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
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

func sendDownload(c *gin.Context, data []byte, fname, mime string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, data)
}

// ===========================
// 📄 Roster export - GET /reports/events/:id/roster?format=csv|excel|pdf
func (h *Handler) RosterReport(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", FormatCSV)
	data, fname, mime, err := h.Service.BuildRosterReport(c.Request.Context(), eventID, user.ID, format)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	sendDownload(c, data, fname, mime)
}

// ===========================
// 📄 Feedback export - GET /reports/events/:id/feedback?format=csv|excel|pdf
func (h *Handler) FeedbackReport(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", FormatCSV)
	data, fname, mime, err := h.Service.BuildFeedbackReport(c.Request.Context(), eventID, user.ID, format)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	sendDownload(c, data, fname, mime)
}

// ===========================
// 📄 Audit log export - GET /reports/audit-logs?date_range=weekly&format=csv
func (h *Handler) AuditLogReport(c *gin.Context) {
	format := c.DefaultQuery("format", FormatCSV)
	dateRange := c.DefaultQuery("date_range", DateRangeWeekly)

	data, fname, mime, err := h.Service.BuildAuditLogReport(
		c.Request.Context(),
		dateRange,
		c.Query("start_date"),
		c.Query("end_date"),
		format,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sendDownload(c, data, fname, mime)
}
