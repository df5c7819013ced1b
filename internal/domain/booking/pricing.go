package booking

// ===============================
// Pricing
// ===============================

const (
	UrgencyNormal = "normal"
	UrgencyUrgent = "urgent"

	// Urgent bookings pay 20% on top of the base price.
	urgentSurchargeRate = 0.20
)

// Quote computes the frozen booking amount from the service's base price.
// The result is stored on the booking row; later price edits on the service
// never affect it.
func Quote(basePrice float64, urgency string) (total, surcharge float64) {
	if urgency == UrgencyUrgent {
		surcharge = basePrice * urgentSurchargeRate
	}
	return basePrice + surcharge, surcharge
}
