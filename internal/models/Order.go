package models

import "time"

// OrderStatusAssigned is the only status written by the load-id path.
// A nil Order.Status means the load is still open.
const OrderStatusAssigned = "assigned"

// Order is a load posted by a customer. Column names follow the
// pickup/delivery contact blocks of the posting form.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	LoadID      string `gorm:"index" json:"load_id"`
	TrailerType string `json:"trailer_type"`
	Description string `json:"description"`

	VehicleAmount int    `json:"vehicle_amount"`
	VehicleType   string `json:"vehicle_type"`
	VehicleNotes  string `json:"vehicle_notes"`

	PickupContactName               string `json:"pickup_contact_name"`
	PickupContactEmail              string `json:"pickup_contact_email"`
	PickupContactPhone              string `json:"pickup_contact_phone"`
	PickupContactPhoneNotes         string `json:"pickup_contact_phone_notes"`
	PickupContactAddress            string `json:"pickup_contact_address"`
	PickupContactZip                string `json:"pickup_contact_zip"`
	PickupContactPickupRestrictions string `json:"pickup_contact_pickup_restrictions"`

	DeliveryContactName       string `json:"delivery_contact_name"`
	DeliveryContactEmail      string `json:"delivery_contact_email"`
	DeliveryContactPhone      string `json:"delivery_contact_phone"`
	DeliveryContactPhoneNotes string `json:"delivery_contact_phone_notes"`
	DeliveryAddress           string `json:"delivery_address"`
	DeliveryContactZip        string `json:"delivery_contact_zip"`
	DeliveryRestrictions      string `json:"delivery_restrictions"`

	Payment      float64 `json:"payment"`
	PaymentType  string  `json:"payment_type"`
	PaymentNotes string  `json:"payment_notes"`

	UserID    uint      `json:"user_id"`
	Status    *string   `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
