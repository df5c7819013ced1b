package booking

import (
	"context"

	"github.com/quickserve-app/quickserve-api/internal/audit"
	domain "github.com/quickserve-app/quickserve-api/internal/domain/booking"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpdateStatusInput struct {
	BookingID uint

	CallerID   uint
	CallerRole string

	NextStatus string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	// Transition authority: the booking's provider or an admin. Customers
	// never drive status.
	switch in.CallerRole {
	case middleware.RoleAdmin:
	case middleware.RoleProvider:
		if b.ProviderID != in.CallerID {
			return nil, httperr.ErrBusiness("access_denied")
		}
	default:
		return nil, httperr.ErrBusiness("access_denied")
	}

	if err := domain.Transition(b, domain.Status(in.NextStatus)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBookingStatus(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CallerID,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"status": in.NextStatus},
	})

	return b, nil
}
