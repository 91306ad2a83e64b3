package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/middleware"
	"github.com/himsog/himsog-api/internal/models"
	ucAppointment "github.com/himsog/himsog-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	confirm  *ucAppointment.ConfirmAppointment
	complete *ucAppointment.CompleteAppointment
	cancel   *ucAppointment.CancelAppointment
	noShow   *ucAppointment.MarkNoShow
	byDate   *ucAppointment.ListAppointmentsByDate
	byMonth  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	confirm *ucAppointment.ConfirmAppointment,
	complete *ucAppointment.CompleteAppointment,
	cancel *ucAppointment.CancelAppointment,
	noShow *ucAppointment.MarkNoShow,
	byDate *ucAppointment.ListAppointmentsByDate,
	byMonth *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		confirm:  confirm,
		complete: complete,
		cancel:   cancel,
		noShow:   noShow,
		byDate:   byDate,
		byMonth:  byMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CompleteAppointmentRequest struct {
	ActivityNotes string `json:"activity_notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
	Notes  string `json:"notes"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		httperr.Internal(c, "provider_not_found", "Provider not found.")
		return
	}

	date, err := parseDateInProvider(&provider, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	out, err := h.byDate.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	out, err := h.byMonth.Execute(c.Request.Context(), providerID, year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return 0, false
	}
	return uint(id), true
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), providerID, userID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.complete.Execute(c.Request.Context(), providerID, userID, id, req.ActivityNotes)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Cancellation reason is required.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), providerID, userID, id, req.Reason, models.RoleProvider)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.noShow.Execute(c.Request.Context(), providerID, userID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
