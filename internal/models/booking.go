package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index;not null" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Denormalized from the service so provider listings survive service edits.
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	BookingDate string `gorm:"size:10;not null" json:"booking_date"`
	BookingTime string `gorm:"size:5;not null" json:"booking_time"`

	Status string `gorm:"size:20;index;default:'pending'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	// Frozen at creation; later service price changes never touch it.
	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`

	Details *BookingDetails `gorm:"constraint:OnDelete:CASCADE;" json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingDetails carries the structured customer context that the booking
// form collects alongside the free-text notes.
type BookingDetails struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	BookingID uint `gorm:"uniqueIndex;not null" json:"-"`

	Address string `gorm:"size:255;not null" json:"address"`
	City    string `gorm:"size:100;not null" json:"city"`
	Pincode string `gorm:"size:10" json:"pincode"`
	Phone   string `gorm:"size:20" json:"phone"`

	Urgency         string  `gorm:"size:10;default:'normal'" json:"urgency"`
	UrgencyCharge   float64 `gorm:"type:decimal(10,2);default:0" json:"urgency_charge"`
	PreferredTime   string  `gorm:"size:20;default:'anytime'" json:"preferred_time"`
	PaymentMethod   string  `gorm:"size:20;default:'cash'" json:"payment_method"`
	ServiceDuration string  `gorm:"size:20;default:'standard'" json:"service_duration"`
	NeedsMaterials  bool    `gorm:"default:false" json:"needs_materials"`

	CreatedAt time.Time `json:"-"`
}
