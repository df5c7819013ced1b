package booking

import (
	"github.com/quickserve-app/quickserve-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves a booking to the next status after validating the table.
func Transition(b *models.Booking, next Status) error {
	if err := CanTransition(Status(b.Status), next); err != nil {
		return err
	}

	b.Status = string(next)
	return nil
}
