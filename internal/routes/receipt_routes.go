package routes

import (
	"github.com/gin-gonic/gin"

	"loadboard/internal/controllers"
)

func ReceiptRoutes(api *gin.RouterGroup, h *controllers.Handler, opts Options) {
	upload := api.Group("")
	upload.Use(limitBody(opts.MaxUploadBytes))
	{
		upload.POST("/uploadDriverReceipt", h.UploadDriverReceipt)
		upload.POST("/uploadUserReceipt", h.UploadUserReceipt)
	}
	api.GET("/allReceipts", h.ListReceipts)
}
