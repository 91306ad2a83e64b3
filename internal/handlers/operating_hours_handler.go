package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/cache"
	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/middleware"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/validators"
)

type OperatingHoursHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewOperatingHoursHandler(db *gorm.DB, c *cache.AvailabilityCache) *OperatingHoursHandler {
	return &OperatingHoursHandler{db: db, cache: c}
}

type OperatingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	IsClosed  bool   `json:"is_closed"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type OperatingHoursUpdateRequest struct {
	Days []OperatingDayConfig `json:"days" binding:"required"`
}

func (h *OperatingHoursHandler) Get(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var hours []models.OperatingHours
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_operating_hours", "Failed to load operating hours.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the whole week in one transaction so the slot generator
// never reads a half-written schedule.
func (h *OperatingHoursHandler) Update(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req OperatingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	seen := make(map[int]bool, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear only once.")
			return
		}
		seen[d.Weekday] = true

		if d.IsClosed {
			continue
		}
		if !validators.IsClockRange(d.StartTime, d.EndTime) {
			httperr.BadRequest(c, "invalid_time_range", "Open and close times must be HH:MM with start before end.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_id = ?", providerID).Delete(&models.OperatingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.OperatingHours
		for _, d := range req.Days {
			oh := models.OperatingHours{
				ProviderID: providerID,
				Weekday:    d.Weekday,
				IsClosed:   d.IsClosed,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
			}
			toCreate = append(toCreate, oh)
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		httperr.Internal(c, "failed_to_save_operating_hours", "Failed to save operating hours.")
		return
	}

	// stale hours would let the generator offer invalid slots
	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
