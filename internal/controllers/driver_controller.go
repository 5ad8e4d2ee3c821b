package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loadboard/internal/events"
	"loadboard/internal/models"
)

var errDriverNotFound = errors.New("driver not found")

type assignDriverInput struct {
	TripName         string      `json:"tripName"`
	PickupLocation   string      `json:"pickupLocation"`
	DeliveryLocation string      `json:"deliveryLocation"`
	Payment          looseNumber `json:"payment"`
	UserID           looseNumber `json:"userId"`
	OrderID          looseNumber `json:"orderId"`
}

// ListIdleDrivers handles GET /api/get-drivers.
func (h *Handler) ListIdleDrivers(c *gin.Context) {
	drivers := []models.IdleDriver{}
	if err := h.DB.Model(&models.User{}).
		Select("user_id, last_name").
		Where("account_type = ? AND status = ?", models.AccountTypeDriver, models.UserStatusIdle).
		Order("user_id").
		Find(&drivers).Error; err != nil {
		logrus.WithError(err).Error("ListIdleDrivers: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// AssignDriver handles POST /api/assign-driver. The assignment row and the
// driver's status change commit together or not at all.
func (h *Handler) AssignDriver(c *gin.Context) {
	var input assignDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	driverID, err := input.UserID.Uint()
	if err != nil || driverID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
		return
	}
	payment, err := input.Payment.Amount()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment"})
		return
	}

	assigned := models.AssignedOrder{
		TripName:         input.TripName,
		PickupLocation:   input.PickupLocation,
		DeliveryLocation: input.DeliveryLocation,
		Payment:          payment,
		UserID:           driverID,
	}
	if input.OrderID != "" {
		orderID, err := input.OrderID.Uint()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid orderId"})
			return
		}
		assigned.OrderID = &orderID
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assigned).Error; err != nil {
			return err
		}
		res := tx.Model(&models.User{}).
			Where("user_id = ?", driverID).
			Update("status", models.UserStatusAssigned)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errDriverNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errDriverNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Driver not found"})
			return
		}
		logrus.WithError(err).WithField("driver_id", driverID).Error("AssignDriver: transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error assigning driver"})
		return
	}

	h.publish(c, events.TopicDriverAssigned, driverID, assigned)
	c.JSON(http.StatusCreated, assigned)
}

// ListAssignedOrders handles GET /api/assigned_orders.
func (h *Handler) ListAssignedOrders(c *gin.Context) {
	assigned := []models.AssignedOrder{}
	if err := h.DB.Order("id").Find(&assigned).Error; err != nil {
		logrus.WithError(err).Error("ListAssignedOrders: query failed")
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, assigned)
}
