package chat

import (
	"context"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/chat"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type GetOrCreateConversationInput struct {
	CallerID   uint
	CallerRole string

	OtherUserID uint
	ServiceID   *uint
}

// ======================================================
// USE CASE
// ======================================================

type GetOrCreateConversation struct {
	repo domain.Repository
}

func NewGetOrCreateConversation(repo domain.Repository) *GetOrCreateConversation {
	return &GetOrCreateConversation{repo: repo}
}

func (uc *GetOrCreateConversation) Execute(
	ctx context.Context,
	in GetOrCreateConversationInput,
) (*models.Conversation, bool, error) {

	if in.OtherUserID == 0 || in.OtherUserID == in.CallerID {
		return nil, false, httperr.ErrBusiness("invalid_user")
	}

	// The thread is always stored as (customer, provider); which side the
	// caller sits on follows from their role.
	var customerID, providerID uint
	switch in.CallerRole {
	case middleware.RoleCustomer:
		customerID, providerID = in.CallerID, in.OtherUserID
	case middleware.RoleProvider:
		customerID, providerID = in.OtherUserID, in.CallerID
	default:
		return nil, false, httperr.ErrBusiness("access_denied")
	}

	return uc.repo.GetOrCreateConversation(ctx, customerID, providerID, in.ServiceID)
}
