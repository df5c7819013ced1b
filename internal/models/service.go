package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Weekdays is stored as a JSON array of weekday names ("Monday", ...).
type Weekdays []string

func (w Weekdays) Value() (driver.Value, error) {
	if w == nil {
		return "[]", nil
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (w *Weekdays) Scan(value any) error {
	if value == nil {
		*w = nil
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("weekdays: unsupported scan type")
	}

	return json.Unmarshal(b, w)
}

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID uint `gorm:"index;not null" json:"provider_id"`
	Provider   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title       string  `gorm:"size:200;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:50;index;not null" json:"category"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Location    string  `gorm:"size:255;index" json:"location"`

	Availability Weekdays `gorm:"type:jsonb" json:"availability"`
	WorkingStart string   `gorm:"size:5" json:"working_start"`
	WorkingEnd   string   `gorm:"size:5" json:"working_end"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
