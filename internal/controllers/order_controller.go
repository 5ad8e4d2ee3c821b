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

type createOrderInput struct {
	LoadID      string `json:"loadId"`
	TrailerType string `json:"trailerType"`
	Description string `json:"description"`

	VehicleAmount looseNumber `json:"vehicleAmount"`
	VehicleType   string      `json:"vehicleType"`
	VehicleNotes  string      `json:"vehicleNotes"`

	PickupContactName               string `json:"pickupContactName"`
	PickupContactEmail              string `json:"pickupContactEmail"`
	PickupContactPhone              string `json:"pickupContactPhone"`
	PickupContactPhoneNotes         string `json:"pickupContactPhoneNotes"`
	PickupContactAddress            string `json:"pickupContactAddress"`
	PickupContactZip                string `json:"pickupContactZip"`
	PickupContactPickupRestrictions string `json:"pickupContactPickupRestrictions"`

	DeliveryContactName       string `json:"deliveryContactName"`
	DeliveryContactEmail      string `json:"deliveryContactEmail"`
	DeliveryContactPhone      string `json:"deliveryContactPhone"`
	DeliveryContactPhoneNotes string `json:"deliveryContactPhoneNotes"`
	DeliveryAddress           string `json:"deliveryAddress"`
	DeliveryContactZip        string `json:"deliveryContactZip"`
	DeliveryRestrictions      string `json:"deliveryRestrictions"`

	Payment      looseNumber `json:"payment"`
	PaymentType  string      `json:"paymentType"`
	PaymentNotes string      `json:"paymentNotes"`

	UserID looseNumber `json:"userId"`
}

// CreateOrder handles POST /api/create-orders. New loads start with a NULL
// status, which is what makes them show up on the load board.
func (h *Handler) CreateOrder(c *gin.Context) {
	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order input: " + err.Error()})
		return
	}
	ownerID, err := input.UserID.Uint()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
		return
	}
	vehicleAmount, err := input.VehicleAmount.Int()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicleAmount"})
		return
	}
	payment, err := input.Payment.Amount()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment"})
		return
	}

	order := models.Order{
		LoadID:                          input.LoadID,
		TrailerType:                     input.TrailerType,
		Description:                     input.Description,
		VehicleAmount:                   vehicleAmount,
		VehicleType:                     input.VehicleType,
		VehicleNotes:                    input.VehicleNotes,
		PickupContactName:               input.PickupContactName,
		PickupContactEmail:              input.PickupContactEmail,
		PickupContactPhone:              input.PickupContactPhone,
		PickupContactPhoneNotes:         input.PickupContactPhoneNotes,
		PickupContactAddress:            input.PickupContactAddress,
		PickupContactZip:                input.PickupContactZip,
		PickupContactPickupRestrictions: input.PickupContactPickupRestrictions,
		DeliveryContactName:             input.DeliveryContactName,
		DeliveryContactEmail:            input.DeliveryContactEmail,
		DeliveryContactPhone:            input.DeliveryContactPhone,
		DeliveryContactPhoneNotes:       input.DeliveryContactPhoneNotes,
		DeliveryAddress:                 input.DeliveryAddress,
		DeliveryContactZip:              input.DeliveryContactZip,
		DeliveryRestrictions:            input.DeliveryRestrictions,
		Payment:                         payment,
		PaymentType:                     input.PaymentType,
		PaymentNotes:                    input.PaymentNotes,
		UserID:                          ownerID,
	}

	if err := h.DB.Create(&order).Error; err != nil {
		logrus.WithError(err).Error("CreateOrder: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving order"})
		return
	}

	h.publish(c, events.TopicOrderCreated, order.ID, order)
	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "orderId": order.ID})
}

// ListOpenLoads handles GET /api/get-loads: orders nobody has taken yet.
func (h *Handler) ListOpenLoads(c *gin.Context) {
	orders := []models.Order{}
	if err := h.DB.Where("status IS NULL").Order("id").Find(&orders).Error; err != nil {
		logrus.WithError(err).Error("ListOpenLoads: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListOrders serves both /api/myOrders and /api/driverOrders. Neither view is
// filtered by owner or driver.
func (h *Handler) ListOrders(c *gin.Context) {
	orders := []models.Order{}
	if err := h.DB.Order("id").Find(&orders).Error; err != nil {
		logrus.WithError(err).Error("ListOrders: query failed")
		c.String(http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatusByLoadID handles PATCH /api/update-order-status/:orderId.
// The path value is a load id. Unknown ids are not an error.
func (h *Handler) UpdateOrderStatusByLoadID(c *gin.Context) {
	loadID := c.Param("orderId")

	res := h.DB.Model(&models.Order{}).
		Where("load_id = ?", loadID).
		Update("status", models.OrderStatusAssigned)
	if res.Error != nil {
		logrus.WithError(res.Error).WithField("load_id", loadID).Error("UpdateOrderStatusByLoadID: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating order status"})
		return
	}

	if res.RowsAffected > 0 {
		h.publish(c, events.TopicOrderStatusUpdated, loadID, gin.H{
			"load_id": loadID,
			"status":  models.OrderStatusAssigned,
		})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated to assigned"})
}

// UpdateOrderStatus handles PUT /api/updateOrderStatus. Any status string is
// accepted.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		ID     looseNumber `json:"id"`
		Status string      `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: Missing id or status"})
		return
	}
	id, err := body.ID.Uint()
	if err != nil || id == 0 || body.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: Missing id or status"})
		return
	}

	var order models.Order
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", id).Update("status", body.Status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Take(&order, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		logrus.WithError(err).WithField("order_id", id).Error("UpdateOrderStatus: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.publish(c, events.TopicOrderStatusUpdated, order.ID, order)
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully", "updatedOrder": order})
}
