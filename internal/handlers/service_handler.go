package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickserve-app/quickserve-api/internal/audit"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Location    string   `json:"location" binding:"required"`
	Availability []string `json:"availability"`
	WorkingStart string   `json:"working_start"`
	WorkingEnd   string   `json:"working_end"`
}

type UpdateServiceRequest struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Category     *string   `json:"category,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Availability *[]string `json:"availability,omitempty"`
	WorkingStart *string   `json:"working_start,omitempty"`
	WorkingEnd   *string   `json:"working_end,omitempty"`
	IsActive     *bool     `json:"is_active,omitempty"`
}

// --------- Public browse ---------

func (h *ServiceHandler) Browse(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	location := strings.ToLower(strings.TrimSpace(c.Query("location")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("is_active = ?", true)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+location+"%")
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND is_active = ?", id, true).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// --------- Provider CRUD ---------

func (h *ServiceHandler) ListMine(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(uint)

	var services []models.Service
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	service := models.Service{
		ProviderID:   providerID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		Location:     strings.TrimSpace(req.Location),
		Availability: models.Weekdays(req.Availability),
		WorkingStart: req.WorkingStart,
		WorkingEnd:   req.WorkingEnd,
		IsActive:     true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &providerID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND provider_id = ?", id, providerID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_price"})
		return
	}

	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Location != nil {
		service.Location = *req.Location
	}
	if req.Availability != nil {
		service.Availability = models.Weekdays(*req.Availability)
	}
	if req.WorkingStart != nil {
		service.WorkingStart = *req.WorkingStart
	}
	if req.WorkingEnd != nil {
		service.WorkingEnd = *req.WorkingEnd
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// Delete removes a service with no booking history; a service that has been
// booked is deactivated instead, so past bookings keep their reference.
func (h *ServiceHandler) Delete(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND provider_id = ?", id, providerID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var bookingCount int64
	h.db.Model(&models.Booking{}).Where("service_id = ?", service.ID).Count(&bookingCount)

	if bookingCount > 0 {
		if err := h.db.Model(&service).UpdateColumn("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service"})
			return
		}
	} else {
		if err := h.db.Delete(&service).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service"})
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  &providerID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &service.ID,
		Metadata: map[string]any{"deactivated_only": bookingCount > 0},
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "deactivated_only": bookingCount > 0})
}
