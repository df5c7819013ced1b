package dto

import "time"

type BookingListDTO struct {
	ID           uint      `json:"id"`
	BookingDate  string    `json:"booking_date"`
	BookingTime  string    `json:"booking_time"`
	Status       string    `json:"status"`
	TotalAmount  float64   `json:"total_amount"`
	CustomerName string    `json:"customer_name"`
	ProviderName string    `json:"provider_name"`
	ServiceTitle string    `json:"service_title"`
	CreatedAt    time.Time `json:"created_at"`
}
