package chat

import (
	"context"
	"time"

	"github.com/quickserve-app/quickserve-api/internal/models"
)

// ConversationRow is a conversation joined with the names the directory
// needs to render one list entry.
type ConversationRow struct {
	Conversation models.Conversation

	CustomerName string
	ProviderName string
	ServiceTitle string
}

// MessageRow is a message joined with its sender's display fields.
type MessageRow struct {
	Message models.Message

	SenderName  string
	SenderImage string
}

type Repository interface {
	// -------- Conversation directory --------

	// GetOrCreateConversation resolves the unique (customer, provider,
	// service) thread, inserting it when absent. The insert races against
	// concurrent first contact, so implementations must rely on the unique
	// constraint and re-fetch on conflict.
	GetOrCreateConversation(
		ctx context.Context,
		customerID uint,
		providerID uint,
		serviceID *uint,
	) (conv *models.Conversation, existed bool, err error)

	// GetConversation returns the "conversation_not_found" business error
	// for a missing row; storage failures come back unwrapped.
	GetConversation(
		ctx context.Context,
		conversationID uint,
	) (*models.Conversation, error)

	ListConversations(
		ctx context.Context,
		userID uint,
	) ([]ConversationRow, error)

	SoftDeleteConversation(
		ctx context.Context,
		conversationID uint,
		asCustomer bool,
	) error

	// -------- Message feed --------

	// AppendMessage inserts the message and, in the same transaction,
	// refreshes the conversation's last-message cache, bumps the
	// recipient's unread counter, and clears the recipient's deleted flag.
	AppendMessage(
		ctx context.Context,
		m *models.Message,
		preview string,
		sentAt time.Time,
	) error

	ListMessagesSince(
		ctx context.Context,
		conversationID uint,
		sinceID uint,
	) ([]MessageRow, error)

	// ListMessagesPage returns the most recent page, newest first; callers
	// reverse it for display.
	ListMessagesPage(
		ctx context.Context,
		conversationID uint,
		limit int,
		offset int,
	) ([]MessageRow, error)

	// MarkConversationRead flags the counterparty's messages as read and
	// zeroes the reader's unread counter.
	MarkConversationRead(
		ctx context.Context,
		conversationID uint,
		readerID uint,
	) error

	// -------- Message ownership (edit / delete) --------

	// GetOwnMessage loads a message only when callerID is its sender, so
	// "wrong owner" and "no such message" are indistinguishable to callers:
	// both are the "message_not_found" business error.
	GetOwnMessage(
		ctx context.Context,
		messageID uint,
		callerID uint,
	) (*models.Message, error)

	UpdateMessage(
		ctx context.Context,
		m *models.Message,
	) error
}
