package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const chatReadLimit = 4096

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatSocket handles GET /api/chat/ws?token=<jwt>. The socket is push-only:
// incoming frames are read and discarded until the client goes away.
func (h *Handler) ChatSocket(c *gin.Context) {
	claims, err := h.Auth.ValidateToken(c.Query("token"))
	if err != nil {
		logrus.WithError(err).Warn("ChatSocket: rejected connection")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("ChatSocket: upgrade failed")
		return
	}
	defer conn.Close()

	h.Hub.Register(claims.UserID, conn)
	defer h.Hub.Unregister(claims.UserID, conn)

	conn.SetReadLimit(chatReadLimit)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithField("user_id", claims.UserID).Info("ChatSocket: read error")
			}
			return
		}
	}
}
