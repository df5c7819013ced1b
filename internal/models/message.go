package models

import "time"

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConversationID uint         `gorm:"index;not null" json:"conversation_id"`
	Conversation   Conversation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SenderID uint `gorm:"index;not null" json:"sender_id"`
	Sender   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// text | location | audio ("image" and "system" are reserved).
	MessageType string `gorm:"size:20;default:'text'" json:"message_type"`
	MessageText string `gorm:"type:text" json:"message_text"`

	LocationLat     *float64 `gorm:"type:decimal(10,8)" json:"location_lat"`
	LocationLng     *float64 `gorm:"type:decimal(11,8)" json:"location_lng"`
	LocationAddress string   `gorm:"size:500" json:"location_address"`

	AttachmentURL string `gorm:"size:255" json:"attachment_url"`

	IsRead    bool `gorm:"default:false" json:"is_read"`
	IsDeleted bool `gorm:"default:false" json:"-"`
	IsEdited  bool `gorm:"default:false" json:"is_edited"`

	// Text as first sent, kept once the message is edited.
	OriginalText string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
