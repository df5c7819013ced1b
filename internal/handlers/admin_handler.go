package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickserve-app/quickserve-api/internal/audit"
	"github.com/quickserve-app/quickserve-api/internal/dto"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/httpresp"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: audit}
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	q := h.db.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var users []models.User
	if err := q.
		Order("id ASC").
		Find(&users).Error; err != nil {

		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	httpresp.List(c, users)
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetUserActive suspends or reinstates an account. Admin accounts cannot be
// suspended through the API.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "Invalid user id.")
		return
	}

	var req SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "is_active is required.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Could not load user.")
		return
	}

	if user.Role == middleware.RoleAdmin {
		httperr.Forbidden(c, "access_denied", "Admin accounts cannot be suspended.")
		return
	}

	if err := h.db.Model(&user).UpdateColumn("is_active", *req.IsActive).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update user.")
		return
	}
	user.IsActive = *req.IsActive

	action := "user_suspended"
	if *req.IsActive {
		action = "user_reinstated"
	}
	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   action,
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.OK(c, user)
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *AdminHandler) ListBookings(c *gin.Context) {
	q := h.db.
		Model(&models.Booking{}).
		Preload("Customer").
		Preload("Service.Provider")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := q.
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		row := dto.BookingListDTO{
			ID:          b.ID,
			BookingDate: b.BookingDate,
			BookingTime: b.BookingTime,
			Status:      b.Status,
			TotalAmount: b.TotalAmount,
			CreatedAt:   b.CreatedAt,
		}
		row.CustomerName = b.Customer.FullName
		row.ServiceTitle = b.Service.Title
		row.ProviderName = b.Service.Provider.FullName
		out = append(out, row)
	}

	httpresp.List(c, out)
}

// ======================================================
// SERVICES
// ======================================================

func (h *AdminHandler) ListServices(c *gin.Context) {
	q := h.db.Model(&models.Service{}).Preload("Provider")

	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var services []models.Service
	if err := q.
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

// DeactivateService pulls a listing out of the public catalog without
// touching its booking history.
func (h *AdminHandler) DeactivateService(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Could not load service.")
		return
	}

	if err := h.db.Model(&service).UpdateColumn("is_active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not deactivate service.")
		return
	}
	service.IsActive = false

	h.audit.Dispatch(audit.Event{
		ActorID:  &adminID,
		Action:   "service_deactivated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	httpresp.OK(c, service)
}
