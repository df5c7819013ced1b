package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainChat "github.com/quickserve-app/quickserve-api/internal/domain/chat"
	"github.com/quickserve-app/quickserve-api/internal/httperr"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	ucChat "github.com/quickserve-app/quickserve-api/internal/usecase/chat"
)

// ======================================================
// HANDLER
// ======================================================

type ChatHandler struct {
	getOrCreate *ucChat.GetOrCreateConversation
	list        *ucChat.ListConversations
	send        *ucChat.SendMessage
	fetch       *ucChat.FetchMessages
	edit        *ucChat.EditMessage
	remove      *ucChat.DeleteMessage
	removeConv  *ucChat.DeleteConversation
	logger      *zap.Logger
}

func NewChatHandler(
	getOrCreate *ucChat.GetOrCreateConversation,
	list *ucChat.ListConversations,
	send *ucChat.SendMessage,
	fetch *ucChat.FetchMessages,
	edit *ucChat.EditMessage,
	remove *ucChat.DeleteMessage,
	removeConv *ucChat.DeleteConversation,
	logger *zap.Logger,
) *ChatHandler {
	return &ChatHandler{
		getOrCreate: getOrCreate,
		list:        list,
		send:        send,
		fetch:       fetch,
		edit:        edit,
		remove:      remove,
		removeConv:  removeConv,
		logger:      logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateConversationRequest struct {
	OtherUserID uint  `json:"other_user_id" binding:"required"`
	ServiceID   *uint `json:"service_id"`
}

type SendMessageRequest struct {
	ConversationID uint   `json:"conversation_id" binding:"required"`
	MessageText    string `json:"message_text"`
	MessageType    string `json:"message_type"`

	LocationLat     *float64 `json:"location_lat"`
	LocationLng     *float64 `json:"location_lng"`
	LocationAddress string   `json:"location_address"`

	AttachmentURL string `json:"attachment_url"`
}

type EditMessageRequest struct {
	MessageText string `json:"message_text" binding:"required"`
}

// ======================================================
// CONVERSATIONS
// ======================================================

func (h *ChatHandler) CreateConversation(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	conv, existed, err := h.getOrCreate.Execute(c.Request.Context(), ucChat.GetOrCreateConversationInput{
		CallerID:    callerID,
		CallerRole:  role,
		OtherUserID: req.OtherUserID,
		ServiceID:   req.ServiceID,
	})

	if err != nil {
		switch httperr.BusinessCode(err) {
		case "invalid_user":
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		case "access_denied":
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		default:
			h.logger.Error("failed to get or create conversation", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create conversation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"conversation_id": conv.ID,
		"exists":          existed,
	})
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	summaries, err := h.list.Execute(c.Request.Context(), callerID)
	if err != nil {
		h.logger.Error("failed to list conversations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load conversations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"conversations": summaries,
		"count":         len(summaries),
	})
}

func (h *ChatHandler) DeleteConversation(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Conversation ID required"})
		return
	}

	if err := h.removeConv.Execute(c.Request.Context(), uint(id), callerID); err != nil {
		switch httperr.BusinessCode(err) {
		case "conversation_not_found", "access_denied":
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Conversation not found or access denied"})
		default:
			h.logger.Error("failed to delete conversation", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete conversation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ======================================================
// MESSAGES
// ======================================================

func (h *ChatHandler) SendMessage(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid conversation ID"})
		return
	}

	kind := req.MessageType
	if kind == "" {
		kind = domainChat.KindText
	}

	msg, err := h.send.Execute(c.Request.Context(), ucChat.SendMessageInput{
		ConversationID: req.ConversationID,
		SenderID:       callerID,
		Payload: domainChat.SendPayload{
			Kind:            kind,
			Text:            req.MessageText,
			LocationLat:     req.LocationLat,
			LocationLng:     req.LocationLng,
			LocationAddress: req.LocationAddress,
			AttachmentURL:   req.AttachmentURL,
		},
	})

	if err != nil {
		switch httperr.BusinessCode(err) {
		case "conversation_not_found":
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Conversation not found"})
		case "access_denied":
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		case "empty_message", "missing_location", "missing_attachment", "invalid_message_type":
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid message"})
		default:
			h.logger.Error("failed to send message", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message_id": msg.ID,
		"message":    "Message sent successfully",
	})
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	conversationID, err := strconv.ParseUint(c.Query("conversation_id"), 10, 64)
	if err != nil || conversationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid conversation ID"})
		return
	}

	sinceID, _ := strconv.ParseUint(c.DefaultQuery("since_id", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.fetch.Execute(c.Request.Context(), ucChat.FetchMessagesInput{
		ConversationID: uint(conversationID),
		CallerID:       callerID,
		SinceID:        uint(sinceID),
		Limit:          limit,
		Offset:         offset,
	})

	if err != nil {
		switch httperr.BusinessCode(err) {
		case "conversation_not_found":
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Conversation not found"})
		case "access_denied":
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		default:
			h.logger.Error("failed to fetch messages", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load messages"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
		"count":    len(messages),
	})
}

func (h *ChatHandler) EditMessage(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Message ID required"})
		return
	}

	var req EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID and text required"})
		return
	}

	if err := h.edit.Execute(c.Request.Context(), uint(id), callerID, req.MessageText); err != nil {
		// "wrong owner" and "no such message" answer the same on purpose.
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to edit or permission denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Message ID required"})
		return
	}

	if err := h.remove.Execute(c.Request.Context(), uint(id), callerID); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to delete or permission denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
