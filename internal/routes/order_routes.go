package routes

import (
	"github.com/gin-gonic/gin"

	"loadboard/internal/controllers"
)

func OrderRoutes(api *gin.RouterGroup, h *controllers.Handler) {
	api.POST("/create-orders", h.CreateOrder)
	api.GET("/get-loads", h.ListOpenLoads)
	api.GET("/myOrders", h.ListOrders)
	api.GET("/driverOrders", h.ListOrders)
	api.PATCH("/update-order-status/:orderId", h.UpdateOrderStatusByLoadID)
	api.PUT("/updateOrderStatus", h.UpdateOrderStatus)
}
