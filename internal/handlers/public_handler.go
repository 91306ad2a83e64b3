package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/models"
	ucAppointment "github.com/himsog/himsog-api/internal/usecase/appointment"
	"github.com/himsog/himsog-api/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	availability *ucAppointment.GetAvailability
	bookSlot     *ucAppointment.BookSlot
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucAppointment.GetAvailability,
	bookSlot *ucAppointment.BookSlot,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		bookSlot:     bookSlot,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type SelectedService struct {
	ID uint `json:"id" binding:"required"`
}

type PublicBookingRequest struct {
	SelectedServices []SelectedService `json:"selected_services" binding:"required,min=1"`
	Date             string            `json:"date" binding:"required"` // YYYY-MM-DD
	Time             string            `json:"time" binding:"required"` // HH:MM
	PatientName      string            `json:"patient_name" binding:"required"`
	PatientEmail     string            `json:"patient_email" binding:"required,email"`
	PatientPhone     string            `json:"patient_phone"`
	Notes            string            `json:"notes"`
}

////////////////////////////////////////////////////////
// DIRECTORY
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProviders(c *gin.Context) {
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Model(&models.Provider{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(address) LIKE ?", like, like, like)
	}

	var providers []models.Provider
	if err := q.Order("name ASC").Find(&providers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_providers", "Failed to list providers.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

func (h *PublicHandler) GetProvider(c *gin.Context) {
	slug := c.Param("slug")

	var provider models.Provider
	if err := h.db.Where("slug = ?", slug).First(&provider).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider not found.")
		return
	}

	var services []models.Service
	h.db.
		Where("provider_id = ? AND active = true", provider.ID).
		Order("id ASC").
		Find(&services)

	var hours []models.OperatingHours
	h.db.
		Where("provider_id = ?", provider.ID).
		Order("weekday ASC").
		Find(&hours)

	c.JSON(http.StatusOK, gin.H{
		"provider":        provider,
		"services":        services,
		"operating_hours": hours,
		"operating_days":  schedule.OperatingDays(hours),
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")

	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	var provider models.Provider
	if err := h.db.Where("slug = ?", slug).First(&provider).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider not found.")
		return
	}

	date, err := parseDateInProvider(&provider, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	result, err := h.availability.Execute(
		c.Request.Context(),
		schedule.AvailabilityInput{
			ProviderID: provider.ID,
			Date:       date,
		},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	slug := c.Param("slug")

	var provider models.Provider
	if err := h.db.Where("slug = ?", slug).First(&provider).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Provider not found.")
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !validators.IsEmailDomainValid(req.PatientEmail) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	serviceIDs := make([]uint, 0, len(req.SelectedServices))
	for _, s := range req.SelectedServices {
		serviceIDs = append(serviceIDs, s.ID)
	}

	ap, err := h.bookSlot.Execute(
		c.Request.Context(),
		ucAppointment.BookSlotInput{
			ProviderID:   provider.ID,
			ServiceIDs:   serviceIDs,
			Date:         req.Date,
			Time:         req.Time,
			PatientName:  req.PatientName,
			PatientEmail: req.PatientEmail,
			PatientPhone: req.PatientPhone,
			Notes:        req.Notes,
		},
	)

	if err != nil {
		// a rejected booking means the world changed since the client's
		// last read; hand back a fresh availability view for recovery
		if su, ok := httperr.AsSlotUnavailable(err); ok {
			resp := gin.H{
				"success":    false,
				"error_code": "slot_unavailable",
				"message":    su.Reason,
			}
			if date, perr := parseDateInProvider(&provider, req.Date); perr == nil {
				if fresh, aerr := h.availability.Fresh(c.Request.Context(), schedule.AvailabilityInput{
					ProviderID: provider.ID,
					Date:       date,
				}); aerr == nil {
					resp["availability"] = fresh
				}
			}
			c.JSON(http.StatusConflict, resp)
			return
		}

		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"appointment": ap,
	})
}
