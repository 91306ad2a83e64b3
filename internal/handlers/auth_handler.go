package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/config"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/timezone"
	"github.com/himsog/himsog-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// dashboard landing path per role; plain lookup, no routing machinery
var dashboardPaths = map[string]string{
	models.RoleProvider: "/provider/dashboard",
	models.RolePatient:  "/appointments",
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required,oneof=provider patient"`

	// provider onboarding fields, required when role=provider
	ProviderName string `json:"provider_name"`
	ProviderSlug string `json:"provider_slug"`
	Address      string `json:"address"`
	Timezone     string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "The email domain does not look valid.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         req.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	var provider *models.Provider
	if req.Role == models.RoleProvider {
		provider, err = h.createProvider(&user, &req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	token, err := h.generateToken(&user, provider)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
		"token":     token,
		"dashboard": dashboardPaths[user.Role],
	}
	if provider != nil {
		resp["provider"] = provider
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) createProvider(user *models.User, req *RegisterRequest) (*models.Provider, error) {
	if req.ProviderName == "" || req.ProviderSlug == "" {
		return nil, errMissingProviderFields
	}

	slug := strings.ToLower(strings.TrimSpace(req.ProviderSlug))

	var count int64
	h.db.Model(&models.Provider{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return nil, errSlugTaken
	}

	tz := req.Timezone
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	provider := models.Provider{
		UserID:          user.ID,
		Name:            req.ProviderName,
		Slug:            slug,
		Address:         req.Address,
		Phone:           req.Phone,
		Timezone:        tz,
		SlotDurationMin: 30,
	}

	if err := h.db.Create(&provider).Error; err != nil {
		return nil, errProviderCreateFailed
	}

	// onboarding default: weekdays 09:00-17:00, weekend closed
	var week []models.OperatingHours
	for wd := 0; wd < 7; wd++ {
		oh := models.OperatingHours{
			ProviderID: provider.ID,
			Weekday:    wd,
			StartTime:  "09:00",
			EndTime:    "17:00",
			IsClosed:   wd == 0 || wd == 6,
		}
		week = append(week, oh)
	}
	h.db.Create(&week)

	return &provider, nil
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	var provider *models.Provider
	if user.Role == models.RoleProvider {
		var p models.Provider
		if err := h.db.Where("user_id = ?", user.ID).First(&p).Error; err == nil {
			provider = &p
		}
	}

	token, err := h.generateToken(&user, provider)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
		"token":     token,
		"dashboard": dashboardPaths[user.Role],
	}
	if provider != nil {
		resp["provider"] = provider
	}

	c.JSON(http.StatusOK, resp)
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User, provider *models.Provider) (string, error) {
	var providerID uint
	if provider != nil {
		providerID = provider.ID
	}

	claims := jwt.MapClaims{
		"sub":        user.ID,
		"providerId": providerID,
		"role":       user.Role,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
