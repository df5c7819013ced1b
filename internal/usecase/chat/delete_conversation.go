package chat

import (
	"context"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/chat"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
)

type DeleteConversation struct {
	repo domain.Repository
}

func NewDeleteConversation(repo domain.Repository) *DeleteConversation {
	return &DeleteConversation{repo: repo}
}

func (uc *DeleteConversation) Execute(
	ctx context.Context,
	conversationID uint,
	callerID uint,
) error {

	conv, err := uc.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conv.IsParticipant(callerID) {
		return httperr.ErrBusiness("access_denied")
	}

	// Hides the thread for the caller's side only; the other party keeps
	// their view and the row is never removed.
	return uc.repo.SoftDeleteConversation(ctx, conv.ID, conv.CustomerID == callerID)
}
