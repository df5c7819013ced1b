package chat

import (
	"context"
	"strings"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/chat"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/models"
	"github.com/quickserve-app/quickserve-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type SendMessageInput struct {
	ConversationID uint
	SenderID       uint

	Payload domain.SendPayload
}

// ======================================================
// USE CASE
// ======================================================

type SendMessage struct {
	repo domain.Repository
}

func NewSendMessage(repo domain.Repository) *SendMessage {
	return &SendMessage{repo: repo}
}

func (uc *SendMessage) Execute(
	ctx context.Context,
	in SendMessageInput,
) (*models.Message, error) {

	conv, err := uc.repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}

	if !conv.IsParticipant(in.SenderID) {
		return nil, httperr.ErrBusiness("access_denied")
	}

	if err := domain.ValidateSend(in.Payload); err != nil {
		return nil, err
	}

	now := timezone.Now()

	msg := &models.Message{
		ConversationID:  conv.ID,
		SenderID:        in.SenderID,
		MessageType:     in.Payload.Kind,
		MessageText:     strings.TrimSpace(in.Payload.Text),
		LocationLat:     in.Payload.LocationLat,
		LocationLng:     in.Payload.LocationLng,
		LocationAddress: in.Payload.LocationAddress,
		AttachmentURL:   in.Payload.AttachmentURL,
	}

	if err := uc.repo.AppendMessage(ctx, msg, domain.Preview(in.Payload), now); err != nil {
		return nil, err
	}

	return msg, nil
}
