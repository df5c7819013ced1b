package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickserve-app/quickserve-api/internal/cache"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/models"
	"github.com/quickserve-app/quickserve-api/internal/timezone"
)

type MeHandler struct {
	db       *gorm.DB
	presence *cache.Presence
}

func NewMeHandler(db *gorm.DB, presence *cache.Presence) *MeHandler {
	return &MeHandler{db: db, presence: presence}
}

type UpdateMeRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	Pincode  *string `json:"pincode,omitempty"`

	ProfileImage *string `json:"profile_image,omitempty"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Pincode != nil {
		user.Pincode = *req.Pincode
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Ping refreshes the caller's activity marker; the presence cache backs the
// online indicator in the conversation list.
func (h *MeHandler) Ping(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	now := timezone.Now()
	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_activity", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_status"})
		return
	}

	_ = h.presence.Touch(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
