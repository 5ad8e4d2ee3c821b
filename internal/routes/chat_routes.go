package routes

import (
	"github.com/gin-gonic/gin"

	"loadboard/internal/controllers"
)

func ChatRoutes(api *gin.RouterGroup, h *controllers.Handler) {
	chat := api.Group("/chat")
	{
		chat.GET("", h.ListConversation)
		chat.POST("", h.SendMessage)
		chat.GET("/ws", h.ChatSocket)
	}
}
