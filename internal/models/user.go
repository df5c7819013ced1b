package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;not null;default:'customer'" json:"role"`

	IsActive bool    `gorm:"default:true" json:"is_active"`
	Rating   float64 `gorm:"type:decimal(3,2);default:0" json:"rating"`

	Gender  string `gorm:"size:20" json:"gender"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	Pincode string `gorm:"size:10" json:"pincode"`

	ProfileImage string `gorm:"size:255" json:"profile_image"`

	LastActivity *time.Time `json:"last_activity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
