package chat

import (
	"context"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/chat"
)

type DeleteMessage struct {
	repo domain.Repository
}

func NewDeleteMessage(repo domain.Repository) *DeleteMessage {
	return &DeleteMessage{repo: repo}
}

func (uc *DeleteMessage) Execute(
	ctx context.Context,
	messageID uint,
	callerID uint,
) error {

	msg, err := uc.repo.GetOwnMessage(ctx, messageID, callerID)
	if err != nil {
		return err
	}

	if err := domain.CanDelete(msg, callerID); err != nil {
		return err
	}

	// Deleting twice is a no-op success.
	if msg.IsDeleted {
		return nil
	}

	msg.IsDeleted = true
	return uc.repo.UpdateMessage(ctx, msg)
}
