package booking

import (
	"context"

	"github.com/quickserve-app/quickserve-api/internal/models"
)

// Repository lookups return business errors ("service_not_found",
// "booking_not_found") for missing rows; storage failures come back
// unwrapped so handlers treat them as internal.
type Repository interface {
	// -------- Service --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Booking (create) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBookingByID(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	UpdateBookingStatus(
		ctx context.Context,
		b *models.Booking,
	) error
}
