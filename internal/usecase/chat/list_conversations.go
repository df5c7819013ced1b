package chat

import (
	"context"
	"time"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/chat"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/timeago"
	"github.com/quickserve-app/quickserve-api/internal/timezone"
)

// ======================================================
// OUTPUT
// ======================================================

type ConversationSummary struct {
	ID uint `json:"id"`

	OtherUserID     uint   `json:"other_user_id"`
	OtherUserName   string `json:"other_user_name"`
	OtherUserRole   string `json:"other_user_role"`
	OtherUserOnline bool   `json:"other_user_online"`

	ServiceID    *uint  `json:"service_id"`
	ServiceTitle string `json:"service_title"`

	LastMessage     string     `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
	UnreadCount     int        `json:"unread_count"`

	CreatedAt time.Time `json:"created_at"`
	TimeAgo   string    `json:"time_ago"`
}

// PresenceChecker reports whether a user pinged recently. Satisfied by the
// redis-backed presence cache; a nil checker means nobody is online.
type PresenceChecker interface {
	IsOnline(ctx context.Context, userID uint) bool
}

// ======================================================
// USE CASE
// ======================================================

type ListConversations struct {
	repo     domain.Repository
	presence PresenceChecker
}

func NewListConversations(repo domain.Repository, presence PresenceChecker) *ListConversations {
	return &ListConversations{repo: repo, presence: presence}
}

func (uc *ListConversations) Execute(
	ctx context.Context,
	userID uint,
) ([]ConversationSummary, error) {

	rows, err := uc.repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()

	summaries := make([]ConversationSummary, 0, len(rows))
	for _, row := range rows {
		conv := row.Conversation

		s := ConversationSummary{
			ID:              conv.ID,
			ServiceID:       conv.ServiceID,
			ServiceTitle:    row.ServiceTitle,
			LastMessage:     conv.LastMessage,
			LastMessageTime: conv.LastMessageTime,
			CreatedAt:       conv.CreatedAt,
			TimeAgo:         timeago.Format(conv.UpdatedAt, now),
		}

		if conv.CustomerID == userID {
			s.OtherUserID = conv.ProviderID
			s.OtherUserName = row.ProviderName
			s.OtherUserRole = middleware.RoleProvider
			s.UnreadCount = conv.CustomerUnread
		} else {
			s.OtherUserID = conv.CustomerID
			s.OtherUserName = row.CustomerName
			s.OtherUserRole = middleware.RoleCustomer
			s.UnreadCount = conv.ProviderUnread
		}

		if s.LastMessage == "" {
			s.LastMessage = "Start chatting"
		}

		if uc.presence != nil {
			s.OtherUserOnline = uc.presence.IsOnline(ctx, s.OtherUserID)
		}

		summaries = append(summaries, s)
	}

	return summaries, nil
}
