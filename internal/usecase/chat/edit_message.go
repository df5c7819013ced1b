package chat

import (
	"context"
	"strings"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/chat"
)

type EditMessage struct {
	repo domain.Repository
}

func NewEditMessage(repo domain.Repository) *EditMessage {
	return &EditMessage{repo: repo}
}

func (uc *EditMessage) Execute(
	ctx context.Context,
	messageID uint,
	callerID uint,
	newText string,
) error {

	// Ownership is part of the lookup: a stale id and someone else's
	// message produce the same answer.
	msg, err := uc.repo.GetOwnMessage(ctx, messageID, callerID)
	if err != nil {
		return err
	}

	if err := domain.CanEdit(msg, callerID, newText); err != nil {
		return err
	}

	if !msg.IsEdited {
		msg.OriginalText = msg.MessageText
	}
	msg.MessageText = strings.TrimSpace(newText)
	msg.IsEdited = true

	return uc.repo.UpdateMessage(ctx, msg)
}
