package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/cache"
	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/middleware"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/timezone"
)

type ProviderHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewProviderHandler(db *gorm.DB, c *cache.AvailabilityCache) *ProviderHandler {
	return &ProviderHandler{db: db, cache: c}
}

type UpdateProviderRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Address         *string `json:"address"`
	Phone           *string `json:"phone"`
	Timezone        *string `json:"timezone"`
	SlotDurationMin *int    `json:"slot_duration_min"`
}

func (h *ProviderHandler) GetMeProvider(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "provider_not_found", "Provider not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_provider", "Failed to load provider profile.")
		return
	}

	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) UpdateMeProvider(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "provider_not_found", "Provider not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_provider", "Failed to load provider profile.")
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	scheduleChanged := false

	if req.Name != nil {
		provider.Name = *req.Name
	}
	if req.Description != nil {
		provider.Description = *req.Description
	}
	if req.Address != nil {
		provider.Address = *req.Address
	}
	if req.Phone != nil {
		provider.Phone = *req.Phone
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone identifier.")
			return
		}
		provider.Timezone = *req.Timezone
		scheduleChanged = true
	}
	if req.SlotDurationMin != nil {
		if *req.SlotDurationMin < 5 || *req.SlotDurationMin > 240 {
			httperr.BadRequest(c, "invalid_slot_duration", "Slot duration must be between 5 and 240 minutes.")
			return
		}
		// existing appointments keep their window; only future generation changes
		provider.SlotDurationMin = *req.SlotDurationMin
		scheduleChanged = true
	}

	if err := h.db.Save(&provider).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Failed to save provider settings.")
		return
	}

	if scheduleChanged {
		h.cache.InvalidateProvider(c.Request.Context(), provider.ID)
	}

	c.JSON(http.StatusOK, provider)
}
