package booking

import (
	"context"
	"errors"
	"testing"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/booking"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	services map[uint]*models.Service
	bookings map[uint]*models.Booking

	// When set, lookups fail with this raw error instead of a business one.
	storageErr error

	nextID       uint
	statusWrites int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uint]*models.Service{},
		bookings: map[uint]*models.Booking{},
	}
}

func (f *fakeRepo) addService(id, providerID uint, price float64) *models.Service {
	s := &models.Service{ID: id, ProviderID: providerID, Price: price, IsActive: true}
	f.services[id] = s
	return s
}

func (f *fakeRepo) GetActiveService(_ context.Context, id uint) (*models.Service, error) {
	if f.storageErr != nil {
		return nil, f.storageErr
	}
	s, ok := f.services[id]
	if !ok || !s.IsActive {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return s, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	f.nextID++
	b.ID = f.nextID
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) GetBookingByID(_ context.Context, id uint) (*models.Booking, error) {
	if f.storageErr != nil {
		return nil, f.storageErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return b, nil
}

func (f *fakeRepo) UpdateBookingStatus(_ context.Context, b *models.Booking) error {
	f.statusWrites++
	f.bookings[b.ID] = b
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func validInput() CreateBookingInput {
	return CreateBookingInput{
		CustomerID: 10,
		ServiceID:  1,
		Date:       "2025-07-01",
		Time:       "14:30",
		Address:    "12 MG Road",
		City:       "Bengaluru",
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBookingFreezesUrgentQuote(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 20, 500)
	uc := NewCreateBooking(repo, nil)

	in := validInput()
	in.Urgency = "urgent"

	b, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.TotalAmount != 600 {
		t.Fatalf("urgent 500 must quote 600, got %v", b.TotalAmount)
	}
	if b.Details == nil || b.Details.UrgencyCharge != 100 {
		t.Fatalf("surcharge must be recorded on details: %+v", b.Details)
	}
	if b.ProviderID != 20 {
		t.Fatalf("provider must denormalize from the service, got %d", b.ProviderID)
	}
	if b.Status != string(domain.StatusPending) {
		t.Fatalf("new booking must be pending, got %s", b.Status)
	}

	// A later price change never touches the stored amount.
	repo.services[1].Price = 900
	if b.TotalAmount != 600 {
		t.Fatalf("amount must stay frozen, got %v", b.TotalAmount)
	}
}

func TestCreateBookingNormalizesUrgency(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 20, 500)
	uc := NewCreateBooking(repo, nil)

	in := validInput()
	in.Urgency = "asap"

	b, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.TotalAmount != 500 || b.Details.Urgency != domain.UrgencyNormal {
		t.Fatalf("unknown urgency must price as normal: amount=%v urgency=%s",
			b.TotalAmount, b.Details.Urgency)
	}
}

func TestCreateBookingDefaultsDetails(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 20, 300)
	uc := NewCreateBooking(repo, nil)

	b, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	d := b.Details
	if d.PreferredTime != "anytime" || d.PaymentMethod != "cash" || d.ServiceDuration != "standard" {
		t.Fatalf("detail defaults: %+v", d)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 20, 500)
	uc := NewCreateBooking(repo, nil)
	ctx := context.Background()

	in := validInput()
	in.Address = "  "
	if _, err := uc.Execute(ctx, in); httperr.BusinessCode(err) != "missing_address" {
		t.Fatalf("blank address: got %v", err)
	}

	in = validInput()
	in.Date = "01/07/2025"
	if _, err := uc.Execute(ctx, in); httperr.BusinessCode(err) != "invalid_date_or_time" {
		t.Fatalf("bad date: got %v", err)
	}

	in = validInput()
	in.ServiceID = 404
	if _, err := uc.Execute(ctx, in); httperr.BusinessCode(err) != "service_not_found" {
		t.Fatalf("missing service: got %v", err)
	}

	repo.services[1].IsActive = false
	if _, err := uc.Execute(ctx, validInput()); httperr.BusinessCode(err) != "service_not_found" {
		t.Fatalf("inactive service: got %v", err)
	}
}

func TestCreateBookingSurfacesStorageFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, 20, 500)
	repo.storageErr = errors.New("connection refused")
	uc := NewCreateBooking(repo, nil)

	_, err := uc.Execute(context.Background(), validInput())
	if err == nil {
		t.Fatal("expected the storage error to surface")
	}
	// A storage failure must not masquerade as a missing service.
	if code := httperr.BusinessCode(err); code != "" {
		t.Fatalf("expected a raw error, got business code %q", code)
	}
}

// ======================================================
// STATUS
// ======================================================

func seedBooking(repo *fakeRepo, providerID uint, status domain.Status) *models.Booking {
	repo.nextID++
	b := &models.Booking{
		ID:         repo.nextID,
		CustomerID: 10,
		ProviderID: providerID,
		Status:     string(status),
	}
	repo.bookings[b.ID] = b
	return b
}

func TestUpdateStatusProviderConfirms(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, 20, domain.StatusPending)
	uc := NewUpdateStatus(repo, nil)

	out, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID:  b.ID,
		CallerID:   20,
		CallerRole: middleware.RoleProvider,
		NextStatus: "confirmed",
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if out.Status != string(domain.StatusConfirmed) {
		t.Fatalf("expected confirmed, got %s", out.Status)
	}
	if repo.statusWrites != 1 {
		t.Fatalf("expected one status write, got %d", repo.statusWrites)
	}
}

func TestUpdateStatusAuthority(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, 20, domain.StatusPending)
	uc := NewUpdateStatus(repo, nil)
	ctx := context.Background()

	// Customers never drive status.
	_, err := uc.Execute(ctx, UpdateStatusInput{
		BookingID: b.ID, CallerID: 10, CallerRole: middleware.RoleCustomer, NextStatus: "confirmed",
	})
	if httperr.BusinessCode(err) != "access_denied" {
		t.Fatalf("customer: got %v", err)
	}

	// Another provider cannot touch it either.
	_, err = uc.Execute(ctx, UpdateStatusInput{
		BookingID: b.ID, CallerID: 21, CallerRole: middleware.RoleProvider, NextStatus: "confirmed",
	})
	if httperr.BusinessCode(err) != "access_denied" {
		t.Fatalf("foreign provider: got %v", err)
	}

	// Admins can.
	out, err := uc.Execute(ctx, UpdateStatusInput{
		BookingID: b.ID, CallerID: 1, CallerRole: middleware.RoleAdmin, NextStatus: "cancelled",
	})
	if err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
	if out.Status != string(domain.StatusCancelled) {
		t.Fatalf("expected cancelled, got %s", out.Status)
	}
}

func TestUpdateStatusRejectsIllegalMoves(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateStatus(repo, nil)
	ctx := context.Background()

	b := seedBooking(repo, 20, domain.StatusPending)
	_, err := uc.Execute(ctx, UpdateStatusInput{
		BookingID: b.ID, CallerID: 20, CallerRole: middleware.RoleProvider, NextStatus: "completed",
	})
	if httperr.BusinessCode(err) != "invalid_transition" {
		t.Fatalf("pending -> completed: got %v", err)
	}

	done := seedBooking(repo, 20, domain.StatusCompleted)
	_, err = uc.Execute(ctx, UpdateStatusInput{
		BookingID: done.ID, CallerID: 20, CallerRole: middleware.RoleProvider, NextStatus: "cancelled",
	})
	if httperr.BusinessCode(err) != "invalid_transition" {
		t.Fatalf("terminal booking: got %v", err)
	}

	_, err = uc.Execute(ctx, UpdateStatusInput{
		BookingID: b.ID, CallerID: 20, CallerRole: middleware.RoleProvider, NextStatus: "archived",
	})
	if httperr.BusinessCode(err) != "invalid_status" {
		t.Fatalf("unknown status: got %v", err)
	}

	_, err = uc.Execute(ctx, UpdateStatusInput{
		BookingID: 404, CallerID: 20, CallerRole: middleware.RoleProvider, NextStatus: "confirmed",
	})
	if httperr.BusinessCode(err) != "booking_not_found" {
		t.Fatalf("missing booking: got %v", err)
	}
}

func TestUpdateStatusSurfacesStorageFailures(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, 20, domain.StatusPending)
	repo.storageErr = errors.New("connection refused")
	uc := NewUpdateStatus(repo, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: b.ID, CallerID: 20, CallerRole: middleware.RoleProvider, NextStatus: "confirmed",
	})
	if err == nil {
		t.Fatal("expected the storage error to surface")
	}
	if code := httperr.BusinessCode(err); code != "" {
		t.Fatalf("expected a raw error, got business code %q", code)
	}
	if repo.statusWrites != 0 {
		t.Fatal("failed lookup must not write a status")
	}
}
