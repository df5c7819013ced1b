package models

import "time"

// Conversation is the single thread between one customer and one provider,
// optionally scoped to a service. The (customer, provider, service) triple is
// unique; a NULL service means a general thread between the two parties.
// NULLs never collide under the triple index, so general threads are guarded
// by a second, partial unique index on (customer_id, provider_id) WHERE
// service_id IS NULL, created alongside the migration.
type Conversation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"uniqueIndex:uq_conversation,priority:1;not null" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ProviderID uint `gorm:"uniqueIndex:uq_conversation,priority:2;not null" json:"provider_id"`
	Provider   User `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID *uint    `gorm:"uniqueIndex:uq_conversation,priority:3" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Denormalized feed cache, refreshed on every send.
	LastMessage     string     `gorm:"size:255" json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`

	CustomerUnread int `gorm:"default:0" json:"customer_unread"`
	ProviderUnread int `gorm:"default:0" json:"provider_unread"`

	DeletedByCustomer bool `gorm:"default:false" json:"-"`
	DeletedByProvider bool `gorm:"default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// IsParticipant reports whether userID is one of the two parties.
func (c *Conversation) IsParticipant(userID uint) bool {
	return c.CustomerID == userID || c.ProviderID == userID
}

// OtherParty returns the id of the counterparty. Party resolution compares
// stored ids rather than role names.
func (c *Conversation) OtherParty(userID uint) uint {
	if c.CustomerID == userID {
		return c.ProviderID
	}
	return c.CustomerID
}
