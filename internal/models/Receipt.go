package models

import "time"

type Receipt struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        string    `json:"order_id"`
	ReceiptPath    string    `gorm:"not null" json:"receipt_path"` // absolute URL or provider-relative path
	PickupLocation string    `json:"pickup_location"`
	DropLocation   string    `json:"drop_location"`
	UserID         uint      `gorm:"index" json:"user_id"`
	AccountType    string    `json:"account_type"`
	CreatedAt      time.Time `json:"created_at"`
}
