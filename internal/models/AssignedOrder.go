package models

import "time"

// AssignedOrder records a driver being matched to a trip. OrderID is optional:
// older clients assign by trip details alone.
type AssignedOrder struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TripName         string    `json:"trip_name"`
	PickupLocation   string    `json:"pickup_location"`
	DeliveryLocation string    `json:"delivery_location"`
	Payment          float64   `json:"payment"`
	UserID           uint      `gorm:"index" json:"user_id"`
	OrderID          *uint     `json:"order_id"`
	Order            *Order    `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}
