package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/models"
	ucBooking "github.com/quickserve-app/quickserve-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db     *gorm.DB
	create *ucBooking.CreateBooking
	status *ucBooking.UpdateStatus
	logger *zap.Logger
}

func NewBookingHandler(
	db *gorm.DB,
	create *ucBooking.CreateBooking,
	status *ucBooking.UpdateStatus,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		db:     db,
		create: create,
		status: status,
		logger: logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"booking_date" binding:"required"`
	Time      string `json:"booking_time" binding:"required"`
	Notes     string `json:"notes"`

	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`

	Urgency         string `json:"urgency"`
	PreferredTime   string `json:"preferred_time"`
	PaymentMethod   string `json:"payment_method"`
	ServiceDuration string `json:"service_duration"`
	NeedsMaterials  bool   `json:"needs_materials"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill all required fields.")
		return
	}

	booking, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		CustomerID:      customerID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
		Address:         req.Address,
		City:            req.City,
		Pincode:         req.Pincode,
		Phone:           req.Phone,
		Urgency:         req.Urgency,
		PreferredTime:   req.PreferredTime,
		PaymentMethod:   req.PaymentMethod,
		ServiceDuration: req.ServiceDuration,
		NeedsMaterials:  req.NeedsMaterials,
	})

	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, "Could not create booking.")
			return
		}
		h.logger.Error("failed to create booking", zap.Error(err))
		httperr.Internal(c, "failed_to_create_booking", "Could not create booking.")
		return
	}

	c.JSON(201, booking)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	q := h.db.
		Preload("Service").
		Preload("Details")

	// Customers see what they booked; providers see what was booked with
	// them.
	if role == middleware.RoleProvider {
		q = q.Where("provider_id = ?", userID)
	} else {
		q = q.Where("customer_id = ?", userID)
	}

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

	c.JSON(200, bookings)
}

// ======================================================
// STATUS TRANSITION
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	booking, err := h.status.Execute(c.Request.Context(), ucBooking.UpdateStatusInput{
		BookingID:  uint(id),
		CallerID:   callerID,
		CallerRole: role,
		NextStatus: req.Status,
	})

	if err != nil {
		switch httperr.BusinessCode(err) {
		case "booking_not_found":
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case "access_denied":
			httperr.Forbidden(c, "access_denied", "You cannot change this booking.")
		case "invalid_transition", "invalid_status":
			httperr.BadRequest(c, "invalid_transition", "Illegal status change.")
		default:
			h.logger.Error("failed to update booking status", zap.Error(err))
			httperr.Internal(c, "failed_to_update_status", "Could not update status.")
		}
		return
	}

	c.JSON(200, booking)
}
