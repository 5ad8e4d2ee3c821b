package routes

import (
	"github.com/gin-gonic/gin"

	"loadboard/internal/controllers"
)

func AuthRoutes(api *gin.RouterGroup, h *controllers.Handler, opts Options) {
	api.POST("/add-user", limitBody(opts.MaxUploadBytes), h.CreateUser)
	api.POST("/login", h.LoginUser)
	api.GET("/users", h.ListUsers)
	api.GET("/me", h.Auth.RequireAuth(), h.Me)
}
