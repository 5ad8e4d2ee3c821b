package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"loadboard/internal/events"
	"loadboard/internal/models"
)

type sendMessageInput struct {
	SenderID   looseNumber `json:"senderId"`
	ReceiverID looseNumber `json:"receiverId"`
	Content    string      `json:"content"`
}

// ListConversation handles GET /api/chat?user1=&user2=. Messages in both
// directions are returned oldest first with the sender's name attached.
func (h *Handler) ListConversation(c *gin.Context) {
	user1, err1 := parseID(c.Query("user1"))
	user2, err2 := parseID(c.Query("user2"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user1 and user2 must be numeric"})
		return
	}

	messages := []models.ConversationMessage{}
	err := h.DB.Table("messages AS m").
		Select("m.id, m.sender_id, m.receiver_id, m.content, m.timestamp, u.first_name AS sender_first_name, u.last_name AS sender_last_name").
		Joins("JOIN users u ON u.user_id = m.sender_id").
		Where("(m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?)", user1, user2, user2, user1).
		Order("m.timestamp ASC, m.id ASC").
		Scan(&messages).Error
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"user1": user1, "user2": user2}).Error("ListConversation: query failed")
		c.String(http.StatusInternalServerError, "Error fetching messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage handles POST /api/chat. Store failures abort with a bare 500.
func (h *Handler) SendMessage(c *gin.Context) {
	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	senderID, err := input.SenderID.Uint()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid senderId"})
		return
	}
	receiverID, err := input.ReceiverID.Uint()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid receiverId"})
		return
	}

	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    input.Content,
		Timestamp:  time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if h.Hub != nil {
		if err := h.Hub.Broadcast(c.Request.Context(), msg, msg.SenderID, msg.ReceiverID); err != nil {
			logrus.WithError(err).WithField("message_id", msg.ID).Warn("SendMessage: realtime push failed")
		}
	}
	h.publish(c, events.TopicChatMessage, msg.ID, msg)
	c.JSON(http.StatusOK, msg)
}
