package chat

import (
	"strings"
	"unicode/utf8"

	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

// ===============================
// Message Kinds
// ===============================

const (
	KindText     = "text"
	KindLocation = "location"
	KindAudio    = "audio"
)

const previewMaxLen = 100

// SendPayload is everything a sender can attach to a new message.
type SendPayload struct {
	Kind string
	Text string

	LocationLat     *float64
	LocationLng     *float64
	LocationAddress string

	AttachmentURL string
}

// ValidateSend checks the payload against its kind before any row is
// written.
func ValidateSend(p SendPayload) error {
	switch p.Kind {
	case KindText:
		if strings.TrimSpace(p.Text) == "" {
			return httperr.ErrBusiness("empty_message")
		}
	case KindLocation:
		if p.LocationLat == nil || p.LocationLng == nil {
			return httperr.ErrBusiness("missing_location")
		}
	case KindAudio:
		if strings.TrimSpace(p.AttachmentURL) == "" {
			return httperr.ErrBusiness("missing_attachment")
		}
	default:
		return httperr.ErrBusiness("invalid_message_type")
	}
	return nil
}

// Preview is the denormalized last_message text cached on the conversation.
func Preview(p SendPayload) string {
	switch p.Kind {
	case KindLocation:
		return "📍 Shared location"
	case KindAudio:
		return "🎤 Voice message"
	default:
		text := strings.TrimSpace(p.Text)
		// Truncate on rune boundaries so emoji never leave broken UTF-8 in
		// the cached column.
		if utf8.RuneCountInString(text) > previewMaxLen {
			return string([]rune(text)[:previewMaxLen])
		}
		return text
	}
}

// ===============================
// Edit / Delete Policy
// ===============================

// CanEdit allows an edit only while the message is a live text message owned
// by the caller and the replacement is non-empty.
func CanEdit(m *models.Message, callerID uint, newText string) error {
	if m.SenderID != callerID {
		return httperr.ErrBusiness("message_not_found")
	}
	if m.IsDeleted {
		return httperr.ErrBusiness("message_not_found")
	}
	if m.MessageType != KindText {
		return httperr.ErrBusiness("message_not_editable")
	}
	if strings.TrimSpace(newText) == "" {
		return httperr.ErrBusiness("empty_message")
	}
	return nil
}

// CanDelete allows only the sender to soft-delete. Deleting twice is a
// no-op success.
func CanDelete(m *models.Message, callerID uint) error {
	if m.SenderID != callerID {
		return httperr.ErrBusiness("message_not_found")
	}
	return nil
}
