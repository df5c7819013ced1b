package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/quickserve-app/quickserve-api/internal/domain/chat"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type softDelete struct {
	conversationID uint
	asCustomer     bool
}

type fakeRepo struct {
	convs map[uint]*models.Conversation
	msgs  map[uint]*models.Message

	nextConvID uint
	nextMsgID  uint

	// When set, lookups fail with this raw error instead of a business one.
	storageErr error

	lastPreview   string
	markReadCalls int
	updateCalls   int
	softDeletes   []softDelete
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		convs: map[uint]*models.Conversation{},
		msgs:  map[uint]*models.Message{},
	}
}

func (f *fakeRepo) addConv(customerID, providerID uint) *models.Conversation {
	f.nextConvID++
	c := &models.Conversation{
		ID:         f.nextConvID,
		CustomerID: customerID,
		ProviderID: providerID,
	}
	f.convs[c.ID] = c
	return c
}

func (f *fakeRepo) addMsg(convID, senderID uint, text string) *models.Message {
	f.nextMsgID++
	m := &models.Message{
		ID:             f.nextMsgID,
		ConversationID: convID,
		SenderID:       senderID,
		MessageType:    domain.KindText,
		MessageText:    text,
	}
	f.msgs[m.ID] = m
	return m
}

func (f *fakeRepo) GetOrCreateConversation(
	_ context.Context, customerID, providerID uint, serviceID *uint,
) (*models.Conversation, bool, error) {
	for _, c := range f.convs {
		if c.CustomerID == customerID && c.ProviderID == providerID {
			return c, true, nil
		}
	}
	c := f.addConv(customerID, providerID)
	c.ServiceID = serviceID
	return c, false, nil
}

func (f *fakeRepo) GetConversation(_ context.Context, id uint) (*models.Conversation, error) {
	if f.storageErr != nil {
		return nil, f.storageErr
	}
	c, ok := f.convs[id]
	if !ok {
		return nil, httperr.ErrBusiness("conversation_not_found")
	}
	return c, nil
}

func (f *fakeRepo) ListConversations(_ context.Context, userID uint) ([]domain.ConversationRow, error) {
	var rows []domain.ConversationRow
	for _, c := range f.convs {
		if !c.IsParticipant(userID) {
			continue
		}
		rows = append(rows, domain.ConversationRow{
			Conversation: *c,
			CustomerName: "Customer",
			ProviderName: "Provider",
		})
	}
	return rows, nil
}

func (f *fakeRepo) SoftDeleteConversation(_ context.Context, id uint, asCustomer bool) error {
	f.softDeletes = append(f.softDeletes, softDelete{id, asCustomer})
	return nil
}

func (f *fakeRepo) AppendMessage(_ context.Context, m *models.Message, preview string, sentAt time.Time) error {
	f.nextMsgID++
	m.ID = f.nextMsgID
	f.msgs[m.ID] = m

	f.lastPreview = preview

	conv := f.convs[m.ConversationID]
	conv.LastMessage = preview
	conv.LastMessageTime = &sentAt
	if m.SenderID == conv.CustomerID {
		conv.ProviderUnread++
	} else {
		conv.CustomerUnread++
	}
	return nil
}

func (f *fakeRepo) ListMessagesSince(_ context.Context, convID, sinceID uint) ([]domain.MessageRow, error) {
	var rows []domain.MessageRow
	for id := sinceID + 1; id <= f.nextMsgID; id++ {
		if m, ok := f.msgs[id]; ok && m.ConversationID == convID && !m.IsDeleted {
			rows = append(rows, domain.MessageRow{Message: *m})
		}
	}
	return rows, nil
}

func (f *fakeRepo) ListMessagesPage(_ context.Context, convID uint, limit, offset int) ([]domain.MessageRow, error) {
	var rows []domain.MessageRow
	skipped := 0
	for id := f.nextMsgID; id >= 1 && len(rows) < limit; id-- {
		m, ok := f.msgs[id]
		if !ok || m.ConversationID != convID || m.IsDeleted {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		rows = append(rows, domain.MessageRow{Message: *m})
	}
	return rows, nil
}

func (f *fakeRepo) MarkConversationRead(_ context.Context, convID, readerID uint) error {
	f.markReadCalls++
	conv := f.convs[convID]
	if conv.CustomerID == readerID {
		conv.CustomerUnread = 0
	} else {
		conv.ProviderUnread = 0
	}
	return nil
}

func (f *fakeRepo) GetOwnMessage(_ context.Context, id, callerID uint) (*models.Message, error) {
	if f.storageErr != nil {
		return nil, f.storageErr
	}
	m, ok := f.msgs[id]
	if !ok || m.SenderID != callerID {
		return nil, httperr.ErrBusiness("message_not_found")
	}
	return m, nil
}

func (f *fakeRepo) UpdateMessage(_ context.Context, m *models.Message) error {
	f.updateCalls++
	f.msgs[m.ID] = m
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// GET OR CREATE
// ======================================================

func TestGetOrCreateOrientsByRole(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetOrCreateConversation(repo)
	ctx := context.Background()

	conv, existed, err := uc.Execute(ctx, GetOrCreateConversationInput{
		CallerID: 1, CallerRole: middleware.RoleCustomer, OtherUserID: 2,
	})
	if err != nil {
		t.Fatalf("customer caller: %v", err)
	}
	if existed {
		t.Fatal("first contact must report existed=false")
	}
	if conv.CustomerID != 1 || conv.ProviderID != 2 {
		t.Fatalf("customer caller sits on the customer side, got (%d, %d)", conv.CustomerID, conv.ProviderID)
	}

	// Provider opening the same thread lands on the same row.
	conv2, existed, err := uc.Execute(ctx, GetOrCreateConversationInput{
		CallerID: 2, CallerRole: middleware.RoleProvider, OtherUserID: 1,
	})
	if err != nil {
		t.Fatalf("provider caller: %v", err)
	}
	if !existed || conv2.ID != conv.ID {
		t.Fatalf("expected the existing thread, got id=%d existed=%v", conv2.ID, existed)
	}
}

func TestGetOrCreateRejectsSelfAndAdmins(t *testing.T) {
	uc := NewGetOrCreateConversation(newFakeRepo())
	ctx := context.Background()

	_, _, err := uc.Execute(ctx, GetOrCreateConversationInput{
		CallerID: 1, CallerRole: middleware.RoleCustomer, OtherUserID: 1,
	})
	if httperr.BusinessCode(err) != "invalid_user" {
		t.Fatalf("self-conversation: got %v", err)
	}

	_, _, err = uc.Execute(ctx, GetOrCreateConversationInput{
		CallerID: 1, CallerRole: middleware.RoleAdmin, OtherUserID: 2,
	})
	if httperr.BusinessCode(err) != "access_denied" {
		t.Fatalf("admin caller: got %v", err)
	}
}

// ======================================================
// SEND
// ======================================================

func TestSendMessageCachesPreviewAndBumpsUnread(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	uc := NewSendMessage(repo)

	msg, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       1,
		Payload:        domain.SendPayload{Kind: domain.KindText, Text: "  see you at 5  "},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.ID == 0 {
		t.Fatal("message must get an id")
	}
	if msg.MessageText != "see you at 5" {
		t.Fatalf("text must be trimmed, got %q", msg.MessageText)
	}
	if repo.lastPreview != "see you at 5" {
		t.Fatalf("preview: %q", repo.lastPreview)
	}
	if conv.ProviderUnread != 1 || conv.CustomerUnread != 0 {
		t.Fatalf("recipient counter must bump, got customer=%d provider=%d",
			conv.CustomerUnread, conv.ProviderUnread)
	}
}

func TestSendMessageRejectsOutsiders(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	uc := NewSendMessage(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       99,
		Payload:        domain.SendPayload{Kind: domain.KindText, Text: "hi"},
	})
	if httperr.BusinessCode(err) != "access_denied" {
		t.Fatalf("outsider send: got %v", err)
	}

	_, err = uc.Execute(context.Background(), SendMessageInput{
		ConversationID: 404,
		SenderID:       1,
		Payload:        domain.SendPayload{Kind: domain.KindText, Text: "hi"},
	})
	if httperr.BusinessCode(err) != "conversation_not_found" {
		t.Fatalf("missing conversation: got %v", err)
	}
}

// ======================================================
// FETCH
// ======================================================

func TestFetchMessagesWatermark(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		repo.addMsg(conv.ID, 1, text)
	}
	uc := NewFetchMessages(repo)

	views, err := uc.Execute(context.Background(), FetchMessagesInput{
		ConversationID: conv.ID, CallerID: 2, SinceID: 3,
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 new messages, got %d", len(views))
	}
	if views[0].ID != 4 || views[1].ID != 5 {
		t.Fatalf("watermark order must be ascending, got %d, %d", views[0].ID, views[1].ID)
	}
	if repo.markReadCalls != 1 {
		t.Fatalf("fetch must mark the thread read, calls=%d", repo.markReadCalls)
	}
	if views[0].IsMine {
		t.Fatal("counterparty message must not be mine")
	}
}

func TestFetchMessagesPageIsOldestFirst(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	for _, text := range []string{"a", "b", "c", "d"} {
		repo.addMsg(conv.ID, 1, text)
	}
	uc := NewFetchMessages(repo)

	views, err := uc.Execute(context.Background(), FetchMessagesInput{
		ConversationID: conv.ID, CallerID: 1, Limit: 3,
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3, got %d", len(views))
	}
	// The repo hands back 4,3,2; the feed shows 2,3,4.
	if views[0].ID != 2 || views[2].ID != 4 {
		t.Fatalf("page must be reversed for display, got %d..%d", views[0].ID, views[2].ID)
	}
	if !views[0].IsMine {
		t.Fatal("own message must be mine")
	}
}

func TestFetchMessagesSurfacesStorageFailures(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	repo.storageErr = errors.New("connection refused")

	fetch := NewFetchMessages(repo)
	_, err := fetch.Execute(context.Background(), FetchMessagesInput{
		ConversationID: conv.ID, CallerID: 1,
	})
	if err == nil {
		t.Fatal("expected the storage error to surface")
	}
	// A storage failure must not masquerade as a missing conversation.
	if code := httperr.BusinessCode(err); code != "" {
		t.Fatalf("expected a raw error, got business code %q", code)
	}
	if repo.markReadCalls != 0 {
		t.Fatal("failed fetch must not mark anything read")
	}

	send := NewSendMessage(repo)
	_, err = send.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID,
		SenderID:       1,
		Payload:        domain.SendPayload{Kind: domain.KindText, Text: "hi"},
	})
	if err == nil || httperr.BusinessCode(err) != "" {
		t.Fatalf("send must surface the raw error too, got %v", err)
	}
}

func TestFetchMessagesRejectsOutsiders(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	uc := NewFetchMessages(repo)

	_, err := uc.Execute(context.Background(), FetchMessagesInput{
		ConversationID: conv.ID, CallerID: 99,
	})
	if httperr.BusinessCode(err) != "access_denied" {
		t.Fatalf("outsider fetch: got %v", err)
	}
	if repo.markReadCalls != 0 {
		t.Fatal("outsider must not mark anything read")
	}
}

// ======================================================
// EDIT / DELETE
// ======================================================

func TestEditMessageKeepsFirstOriginal(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	m := repo.addMsg(conv.ID, 1, "first")
	uc := NewEditMessage(repo)
	ctx := context.Background()

	if err := uc.Execute(ctx, m.ID, 1, "second"); err != nil {
		t.Fatalf("first edit: %v", err)
	}
	if m.OriginalText != "first" || m.MessageText != "second" || !m.IsEdited {
		t.Fatalf("after first edit: original=%q text=%q edited=%v", m.OriginalText, m.MessageText, m.IsEdited)
	}

	if err := uc.Execute(ctx, m.ID, 1, "third"); err != nil {
		t.Fatalf("second edit: %v", err)
	}
	if m.OriginalText != "first" {
		t.Fatalf("original must survive later edits, got %q", m.OriginalText)
	}
}

func TestEditMessageHidesOwnership(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	m := repo.addMsg(conv.ID, 1, "mine")
	uc := NewEditMessage(repo)

	err := uc.Execute(context.Background(), m.ID, 2, "hijack")
	if httperr.BusinessCode(err) != "message_not_found" {
		t.Fatalf("foreign edit must read as not found, got %v", err)
	}

	err = uc.Execute(context.Background(), 404, 1, "ghost")
	if httperr.BusinessCode(err) != "message_not_found" {
		t.Fatalf("missing message: got %v", err)
	}
}

func TestDeleteMessageIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	m := repo.addMsg(conv.ID, 1, "oops")
	uc := NewDeleteMessage(repo)
	ctx := context.Background()

	if err := uc.Execute(ctx, m.ID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !m.IsDeleted {
		t.Fatal("message must be soft deleted")
	}
	writes := repo.updateCalls

	if err := uc.Execute(ctx, m.ID, 1); err != nil {
		t.Fatalf("second delete must succeed: %v", err)
	}
	if repo.updateCalls != writes {
		t.Fatal("second delete must not write")
	}
}

// ======================================================
// CONVERSATION DELETE / LIST
// ======================================================

func TestDeleteConversationHidesCallerSideOnly(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	uc := NewDeleteConversation(repo)
	ctx := context.Background()

	if err := uc.Execute(ctx, conv.ID, 1); err != nil {
		t.Fatalf("customer delete: %v", err)
	}
	if err := uc.Execute(ctx, conv.ID, 2); err != nil {
		t.Fatalf("provider delete: %v", err)
	}

	if len(repo.softDeletes) != 2 {
		t.Fatalf("expected 2 soft deletes, got %d", len(repo.softDeletes))
	}
	if !repo.softDeletes[0].asCustomer || repo.softDeletes[1].asCustomer {
		t.Fatalf("sides must match the caller: %+v", repo.softDeletes)
	}

	if err := uc.Execute(ctx, conv.ID, 99); httperr.BusinessCode(err) != "access_denied" {
		t.Fatalf("outsider delete: got %v", err)
	}
}

func TestListConversationsSummaries(t *testing.T) {
	repo := newFakeRepo()
	conv := repo.addConv(1, 2)
	conv.CustomerUnread = 3
	conv.ProviderUnread = 1

	uc := NewListConversations(repo, nil)

	summaries, err := uc.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(summaries))
	}

	s := summaries[0]
	if s.OtherUserID != 2 || s.OtherUserRole != middleware.RoleProvider {
		t.Fatalf("customer sees the provider, got id=%d role=%s", s.OtherUserID, s.OtherUserRole)
	}
	if s.UnreadCount != 3 {
		t.Fatalf("customer reads their own counter, got %d", s.UnreadCount)
	}
	if s.LastMessage != "Start chatting" {
		t.Fatalf("empty thread placeholder, got %q", s.LastMessage)
	}
	if s.OtherUserOnline {
		t.Fatal("no presence checker means offline")
	}
}
