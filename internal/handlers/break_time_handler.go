package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/cache"
	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/middleware"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/validators"
)

type BreakTimeHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewBreakTimeHandler(db *gorm.DB, c *cache.AvailabilityCache) *BreakTimeHandler {
	return &BreakTimeHandler{db: db, cache: c}
}

type BreakTimeRequest struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Name      string `json:"name" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (h *BreakTimeHandler) List(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	q := h.db.Where("provider_id = ?", providerID)

	if wd := c.Query("weekday"); wd != "" {
		weekday, err := strconv.Atoi(wd)
		if err != nil || weekday < 0 || weekday > 6 {
			httperr.BadRequest(c, "invalid_weekday", "Weekday must be 0-6.")
			return
		}
		q = q.Where("weekday = ?", weekday)
	}

	var breaks []models.BreakTime
	if err := q.
		Order("weekday ASC, start_time ASC").
		Find(&breaks).Error; err != nil {

		httperr.Internal(c, "failed_to_list_break_times", "Failed to list break times.")
		return
	}

	c.JSON(http.StatusOK, breaks)
}

func (h *BreakTimeHandler) Create(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req BreakTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !validators.IsClockRange(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_time_range", "Break times must be HH:MM with start before end.")
		return
	}

	bt := models.BreakTime{
		ProviderID: providerID,
		Weekday:    req.Weekday,
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	if err := h.db.Create(&bt).Error; err != nil {
		httperr.Internal(c, "failed_to_create_break_time", "Failed to create break time.")
		return
	}

	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	c.JSON(http.StatusCreated, bt)
}

// load verifies existence and ownership before any mutation.
func (h *BreakTimeHandler) load(c *gin.Context, providerID uint) (*models.BreakTime, bool) {
	id := c.Param("id")

	var bt models.BreakTime
	if err := h.db.First(&bt, "id = ?", id).Error; err != nil {
		httperr.Respond(c, httperr.NotFoundError{Resource: "break_time"})
		return nil, false
	}

	if bt.ProviderID != providerID {
		httperr.Respond(c, httperr.AuthorizationError{Resource: "break_time"})
		return nil, false
	}

	return &bt, true
}

func (h *BreakTimeHandler) Update(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	bt, ok := h.load(c, providerID)
	if !ok {
		return
	}

	var req BreakTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if !validators.IsClockRange(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_time_range", "Break times must be HH:MM with start before end.")
		return
	}

	bt.Weekday = req.Weekday
	bt.Name = req.Name
	bt.StartTime = req.StartTime
	bt.EndTime = req.EndTime

	// single atomic write, no partial state
	if err := h.db.Save(bt).Error; err != nil {
		httperr.Internal(c, "failed_to_update_break_time", "Failed to update break time.")
		return
	}

	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	c.JSON(http.StatusOK, bt)
}

func (h *BreakTimeHandler) Delete(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	bt, ok := h.load(c, providerID)
	if !ok {
		return
	}

	if err := h.db.Delete(bt).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_break_time", "Failed to delete break time.")
		return
	}

	h.cache.InvalidateProvider(c.Request.Context(), providerID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
