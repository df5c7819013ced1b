package chat

import (
	"context"
	"time"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/chat"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/timeago"
	"github.com/quickserve-app/quickserve-api/internal/timezone"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type FetchMessagesInput struct {
	ConversationID uint
	CallerID       uint

	// SinceID > 0 switches to watermark mode: only messages with a higher
	// id come back, oldest first, which is what the polling loop wants.
	SinceID uint

	Limit  int
	Offset int
}

type MessageView struct {
	ID          uint   `json:"id"`
	SenderID    uint   `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	SenderImage string `json:"sender_image"`

	MessageType string `json:"message_type"`
	MessageText string `json:"message_text"`

	LocationLat     *float64 `json:"location_lat"`
	LocationLng     *float64 `json:"location_lng"`
	LocationAddress string   `json:"location_address"`

	AttachmentURL string `json:"attachment_url"`

	IsRead   bool `json:"is_read"`
	IsEdited bool `json:"is_edited"`
	IsMine   bool `json:"is_mine"`

	CreatedAt time.Time `json:"created_at"`
	TimeAgo   string    `json:"time_ago"`
}

// ======================================================
// USE CASE
// ======================================================

type FetchMessages struct {
	repo domain.Repository
}

func NewFetchMessages(repo domain.Repository) *FetchMessages {
	return &FetchMessages{repo: repo}
}

func (uc *FetchMessages) Execute(
	ctx context.Context,
	in FetchMessagesInput,
) ([]MessageView, error) {

	conv, err := uc.repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}

	if !conv.IsParticipant(in.CallerID) {
		return nil, httperr.ErrBusiness("access_denied")
	}

	var rows []domain.MessageRow

	if in.SinceID > 0 {
		rows, err = uc.repo.ListMessagesSince(ctx, conv.ID, in.SinceID)
		if err != nil {
			return nil, err
		}
	} else {
		limit := in.Limit
		if limit <= 0 {
			limit = defaultPageSize
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}

		rows, err = uc.repo.ListMessagesPage(ctx, conv.ID, limit, in.Offset)
		if err != nil {
			return nil, err
		}

		// The page comes back newest first; flip it for display.
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}

	// Fetching the feed as a participant is the read action: the other
	// side's messages flip to read and the caller's counter resets. A
	// failure here is not surfaced; the next fetch covers it.
	_ = uc.repo.MarkConversationRead(ctx, conv.ID, in.CallerID)

	now := timezone.Now()

	views := make([]MessageView, 0, len(rows))
	for _, row := range rows {
		m := row.Message
		views = append(views, MessageView{
			ID:              m.ID,
			SenderID:        m.SenderID,
			SenderName:      row.SenderName,
			SenderImage:     row.SenderImage,
			MessageType:     m.MessageType,
			MessageText:     m.MessageText,
			LocationLat:     m.LocationLat,
			LocationLng:     m.LocationLng,
			LocationAddress: m.LocationAddress,
			AttachmentURL:   m.AttachmentURL,
			IsRead:          m.IsRead,
			IsEdited:        m.IsEdited,
			IsMine:          m.SenderID == in.CallerID,
			CreatedAt:       m.CreatedAt,
			TimeAgo:         timeago.Format(m.CreatedAt, now),
		})
	}

	return views, nil
}
