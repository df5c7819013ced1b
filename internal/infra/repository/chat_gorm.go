package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/chat"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

type ChatGormRepository struct {
	db *gorm.DB
}

func NewChatGormRepository(db *gorm.DB) *ChatGormRepository {
	return &ChatGormRepository{db: db}
}

// conversationConflict picks the insert arbiter for the thread's shape.
// Service-scoped threads conflict on the full triple; general threads must
// target the partial index instead, because a NULL service_id never
// conflicts with another NULL under the triple index.
func conversationConflict(serviceID *uint) clause.OnConflict {
	if serviceID == nil {
		return clause.OnConflict{
			Columns: []clause.Column{
				{Name: "customer_id"},
				{Name: "provider_id"},
			},
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "service_id IS NULL"},
			}},
			DoNothing: true,
		}
	}

	return clause.OnConflict{
		Columns: []clause.Column{
			{Name: "customer_id"},
			{Name: "provider_id"},
			{Name: "service_id"},
		},
		DoNothing: true,
	}
}

// --------------------------------------------------
// Conversation directory
// --------------------------------------------------

func (r *ChatGormRepository) GetOrCreateConversation(
	ctx context.Context,
	customerID uint,
	providerID uint,
	serviceID *uint,
) (*models.Conversation, bool, error) {

	var conv models.Conversation
	existed := false

	lookup := func(tx *gorm.DB, dest *models.Conversation) error {
		q := tx.Where("customer_id = ? AND provider_id = ?", customerID, providerID)
		if serviceID == nil {
			q = q.Where("service_id IS NULL")
		} else {
			q = q.Where("service_id = ?", *serviceID)
		}
		return q.First(dest).Error
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		err := lookup(tx, &conv)
		if err == nil {
			existed = true
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		conv = models.Conversation{
			CustomerID: customerID,
			ProviderID: providerID,
			ServiceID:  serviceID,
		}

		// Concurrent first contact can race past the lookup; the unique
		// index decides the winner and the loser re-fetches.
		res := tx.Clauses(conversationConflict(serviceID)).Create(&conv)

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			existed = true
			return lookup(tx, &conv)
		}
		return nil
	})

	if err != nil {
		return nil, false, err
	}
	return &conv, existed, nil
}

func (r *ChatGormRepository) GetConversation(
	ctx context.Context,
	conversationID uint,
) (*models.Conversation, error) {

	var conv models.Conversation
	if err := r.db.WithContext(ctx).First(&conv, conversationID).Error; err != nil {
		// Only a missing row becomes the business code; storage failures
		// stay raw so they surface as 500s.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("conversation_not_found")
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatGormRepository) ListConversations(
	ctx context.Context,
	userID uint,
) ([]domain.ConversationRow, error) {

	var convs []models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Provider").
		Preload("Service").
		Where(
			"(customer_id = ? AND deleted_by_customer = false) OR (provider_id = ? AND deleted_by_provider = false)",
			userID, userID,
		).
		Order("updated_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ConversationRow, 0, len(convs))
	for _, conv := range convs {
		row := domain.ConversationRow{
			Conversation: conv,
			CustomerName: conv.Customer.FullName,
			ProviderName: conv.Provider.FullName,
		}
		if conv.Service != nil {
			row.ServiceTitle = conv.Service.Title
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (r *ChatGormRepository) SoftDeleteConversation(
	ctx context.Context,
	conversationID uint,
	asCustomer bool,
) error {

	column := "deleted_by_provider"
	if asCustomer {
		column = "deleted_by_customer"
	}

	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		UpdateColumn(column, true).Error
}

// --------------------------------------------------
// Message feed
// --------------------------------------------------

func (r *ChatGormRepository) AppendMessage(
	ctx context.Context,
	m *models.Message,
	preview string,
	sentAt time.Time,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conv models.Conversation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&conv, m.ConversationID).Error; err != nil {
			return err
		}

		if err := tx.Create(m).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"last_message":      preview,
			"last_message_time": sentAt,
			"updated_at":        sentAt,
		}

		// The unread counter belongs to whichever party did not send;
		// resolved by id comparison, never by role name. A new message also
		// resurrects the thread on the recipient's side.
		if m.SenderID == conv.CustomerID {
			updates["provider_unread"] = gorm.Expr("provider_unread + 1")
			updates["deleted_by_provider"] = false
		} else {
			updates["customer_unread"] = gorm.Expr("customer_unread + 1")
			updates["deleted_by_customer"] = false
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Updates(updates).Error
	})
}

func (r *ChatGormRepository) ListMessagesSince(
	ctx context.Context,
	conversationID uint,
	sinceID uint,
) ([]domain.MessageRow, error) {

	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where(
			"conversation_id = ? AND id > ? AND is_deleted = false",
			conversationID, sinceID,
		).
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	return toMessageRows(msgs), nil
}

func (r *ChatGormRepository) ListMessagesPage(
	ctx context.Context,
	conversationID uint,
	limit int,
	offset int,
) ([]domain.MessageRow, error) {

	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ? AND is_deleted = false", conversationID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	return toMessageRows(msgs), nil
}

func (r *ChatGormRepository) MarkConversationRead(
	ctx context.Context,
	conversationID uint,
	readerID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Model(&models.Message{}).
			Where(
				"conversation_id = ? AND sender_id != ? AND is_read = false",
				conversationID, readerID,
			).
			UpdateColumn("is_read", true).Error; err != nil {
			return err
		}

		// Only the reader's own counter resets; the row matches at most one
		// of the two predicates.
		if err := tx.Model(&models.Conversation{}).
			Where("id = ? AND customer_id = ?", conversationID, readerID).
			UpdateColumn("customer_unread", 0).Error; err != nil {
			return err
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ? AND provider_id = ?", conversationID, readerID).
			UpdateColumn("provider_unread", 0).Error
	})
}

// --------------------------------------------------
// Message ownership (edit / delete)
// --------------------------------------------------

func (r *ChatGormRepository) GetOwnMessage(
	ctx context.Context,
	messageID uint,
	callerID uint,
) (*models.Message, error) {

	var m models.Message
	if err := r.db.WithContext(ctx).
		Where("id = ? AND sender_id = ?", messageID, callerID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("message_not_found")
		}
		return nil, err
	}

	return &m, nil
}

func (r *ChatGormRepository) UpdateMessage(
	ctx context.Context,
	m *models.Message,
) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func toMessageRows(msgs []models.Message) []domain.MessageRow {
	rows := make([]domain.MessageRow, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, domain.MessageRow{
			Message:     m,
			SenderName:  m.Sender.FullName,
			SenderImage: m.Sender.ProfileImage,
		})
	}
	return rows
}

// Compile-time check
var _ domain.Repository = (*ChatGormRepository)(nil)
