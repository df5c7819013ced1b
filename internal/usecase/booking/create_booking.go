package booking

import (
	"context"
	"strings"

	"github.com/quickserve-app/quickserve-api/internal/audit"
	domain "github.com/quickserve-app/quickserve-api/internal/domain/booking"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/models"
	"github.com/quickserve-app/quickserve-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint
	ServiceID  uint

	Date string
	Time string

	Notes string

	Address string
	City    string
	Pincode string
	Phone   string

	Urgency         string
	PreferredTime   string
	PaymentMethod   string
	ServiceDuration string
	NeedsMaterials  bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.City) == "" {
		return nil, httperr.ErrBusiness("missing_address")
	}

	if _, err := timezone.ParseDateTime(in.Date, in.Time); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	urgency := in.Urgency
	if urgency != domain.UrgencyUrgent {
		urgency = domain.UrgencyNormal
	}

	// The quote freezes into the row; later service price edits never
	// touch existing bookings.
	total, surcharge := domain.Quote(svc.Price, urgency)

	b := &models.Booking{
		CustomerID:  in.CustomerID,
		ServiceID:   svc.ID,
		ProviderID:  svc.ProviderID,
		BookingDate: in.Date,
		BookingTime: in.Time,
		Status:      string(domain.InitialStatus()),
		Notes:       strings.TrimSpace(in.Notes),
		TotalAmount: total,
		Details: &models.BookingDetails{
			Address:         strings.TrimSpace(in.Address),
			City:            strings.TrimSpace(in.City),
			Pincode:         strings.TrimSpace(in.Pincode),
			Phone:           strings.TrimSpace(in.Phone),
			Urgency:         urgency,
			UrgencyCharge:   surcharge,
			PreferredTime:   defaultIfEmpty(in.PreferredTime, "anytime"),
			PaymentMethod:   defaultIfEmpty(in.PaymentMethod, "cash"),
			ServiceDuration: defaultIfEmpty(in.ServiceDuration, "standard"),
			NeedsMaterials:  in.NeedsMaterials,
		},
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"service_id":   svc.ID,
			"urgency":      urgency,
			"total_amount": total,
		},
	})

	return b, nil
}

func defaultIfEmpty(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
