package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"loadboard/internal/events"
	"loadboard/internal/models"
	"loadboard/internal/storage"
)

// UploadDriverReceipt handles POST /api/uploadDriverReceipt.
func (h *Handler) UploadDriverReceipt(c *gin.Context) {
	h.uploadReceipt(c, storage.DriverReceipt)
}

// UploadUserReceipt handles POST /api/uploadUserReceipt.
func (h *Handler) UploadUserReceipt(c *gin.Context) {
	h.uploadReceipt(c, storage.UserReceipt)
}

// uploadReceipt stores the "receipt" file, then records it. A request without
// a file is rejected before anything is uploaded or written.
func (h *Handler) uploadReceipt(c *gin.Context, profile storage.UploadOptions) {
	fh, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	rawUserID := c.PostForm("driverId")
	if rawUserID == "" {
		rawUserID = c.PostForm("userId")
	}
	var submitterID uint
	if rawUserID != "" {
		if submitterID, err = parseID(rawUserID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid driverId"})
			return
		}
	}

	f, err := fh.Open()
	if err != nil {
		logrus.WithError(err).Error("uploadReceipt: could not open file")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer f.Close()

	opts := profile.WithPublicID(fh.Filename, time.Now())
	url, err := h.Files.Upload(c.Request.Context(), f, opts)
	h.Metrics.ObserveUpload(opts.Folder, err)
	if err != nil {
		logrus.WithError(err).WithField("folder", opts.Folder).Error("uploadReceipt: upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	receipt := models.Receipt{
		OrderID:        c.PostForm("orderId"),
		ReceiptPath:    url,
		PickupLocation: c.PostForm("pickupLocation"),
		DropLocation:   c.PostForm("dropLocation"),
		UserID:         submitterID,
		AccountType:    c.PostForm("accountType"),
	}
	if err := h.DB.Create(&receipt).Error; err != nil {
		logrus.WithError(err).WithField("receipt_path", url).Error("uploadReceipt: insert failed, file left orphaned")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.publish(c, events.TopicReceiptUploaded, receipt.ID, receipt)
	c.JSON(http.StatusCreated, gin.H{"message": "Receipt uploaded successfully", "receipt": receipt})
}

// ListReceipts handles GET /api/allReceipts, expanding bare storage paths
// into absolute URLs.
func (h *Handler) ListReceipts(c *gin.Context) {
	receipts := []models.Receipt{}
	if err := h.DB.Order("id").Find(&receipts).Error; err != nil {
		logrus.WithError(err).Error("ListReceipts: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	for i := range receipts {
		receipts[i].ReceiptPath = storage.ReceiptURL(h.ReceiptBaseURL, receipts[i].ReceiptPath)
	}
	c.JSON(http.StatusOK, receipts)
}
