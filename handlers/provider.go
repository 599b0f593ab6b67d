package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"inkbook/config"
	providerRepo "inkbook/database/repository/provider"
	"inkbook/models"
	"inkbook/services/booking"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler serves the public provider profile and slot listings.
type ProviderHandler struct {
	Repo    providerRepo.ProviderRepository
	Service booking.BookingService
}

func NewProviderHandler(repo providerRepo.ProviderRepository, svc booking.BookingService) *ProviderHandler {
	return &ProviderHandler{Repo: repo, Service: svc}
}

// publicProvider strips contact details from the profile shown on the
// booking page.
func publicProvider(p *models.Provider) gin.H {
	return gin.H{
		"id":           p.ID,
		"handle":       p.Handle,
		"displayName":  p.DisplayName,
		"bio":          p.Bio,
		"location":     p.Location,
		"specialties":  p.Specialties,
		"profileImage": p.ProfileImage,
		"availability": p.Availability,
		"stats":        p.Stats,
	}
}

// GetProviderByHandle handles GET /api/providers/:handle.
func (h *ProviderHandler) GetProviderByHandle(c *gin.Context) {
	handle := c.Param("handle")
	provider, err := h.Repo.GetByHandle(c.Request.Context(), handle)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		getLogger(c).Error("Failed to retrieve provider", zap.String("handle", handle), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to get provider"})
		return
	}
	c.JSON(http.StatusOK, publicProvider(provider))
}

// ListSlots handles GET /api/providers/:handle/slots?date=YYYY-MM-DD.
func (h *ProviderHandler) ListSlots(c *gin.Context) {
	handle := c.Param("handle")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	provider, err := h.Repo.GetByHandle(c.Request.Context(), handle)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		getLogger(c).Error("Failed to retrieve provider", zap.String("handle", handle), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to get provider"})
		return
	}

	slots, err := h.Service.ListSlots(c.Request.Context(), provider.ID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// RegisterProvider handles POST /api/providers/register. New providers get
// the configured default booking policy and a dashboard token.
func (h *ProviderHandler) RegisterProvider(c *gin.Context) {
	var input struct {
		Handle       string              `json:"handle"`
		DisplayName  string              `json:"displayName"`
		Email        string              `json:"email"`
		Bio          string              `json:"bio"`
		Location     string              `json:"location"`
		Specialties  []string            `json:"specialties"`
		Availability models.Availability `json:"availability"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.Handle = strings.ToLower(strings.TrimSpace(input.Handle))
	if input.Handle == "" || input.DisplayName == "" || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handle, displayName and email are required"})
		return
	}
	if _, err := booking.GenerateSlots(input.Availability); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid availability: " + err.Error()})
		return
	}

	provider := &models.Provider{
		Handle:       input.Handle,
		DisplayName:  input.DisplayName,
		Email:        input.Email,
		Bio:          input.Bio,
		Location:     input.Location,
		Specialties:  input.Specialties,
		Availability: input.Availability,
		Policy: models.BookingPolicy{
			DepositPercent:     config.AppConfig.DepositPercent,
			CustomMinDeposit:   config.AppConfig.CustomMinDeposit,
			PlatformFeePercent: config.AppConfig.PlatformFeePercent,
		},
	}
	if err := h.Repo.Create(c.Request.Context(), provider); err != nil {
		getLogger(c).Error("Failed to create provider", zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create provider, handle may already be taken"})
		return
	}

	token, err := utils.GenerateToken(provider.ID, provider.Email, 30*24*time.Hour)
	if err != nil {
		getLogger(c).Error("Failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"provider": provider, "token": token})
}
