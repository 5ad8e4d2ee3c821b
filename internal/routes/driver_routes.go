package routes

import (
	"github.com/gin-gonic/gin"

	"loadboard/internal/controllers"
)

func DriverRoutes(api *gin.RouterGroup, h *controllers.Handler) {
	api.GET("/get-drivers", h.ListIdleDrivers)
	api.POST("/assign-driver", h.AssignDriver)
	api.GET("/assigned_orders", h.ListAssignedOrders)
}
