package models

import "time"

// Account types recognised by the load board. Only Driver carries meaning
// for the assignment workflow; everything else is a shipper/customer.
const (
	AccountTypeDriver   = "Driver"
	AccountTypeCustomer = "Customer"
)

// Driver availability values kept in User.Status.
const (
	UserStatusIdle     = "idle"
	UserStatusAssigned = "assigned"
)

type User struct {
	UserID      uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone       string    `json:"phone"`
	AccountType string    `json:"account_type"`
	Gender      string    `json:"gender"`
	ProfilePic  *string   `json:"profile_pic"`
	Country     string    `json:"country"`
	Language    string    `json:"language"`
	Password    string    `gorm:"not null" json:"-"` // bcrypt hash, or verbatim for legacy rows
	Status      string    `gorm:"default:idle" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserSummary is the public projection served by GET /api/users.
type UserSummary struct {
	UserID      uint    `json:"user_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	AccountType string  `json:"account_type"`
	Email       string  `json:"email"`
	ProfilePic  *string `json:"profile_pic"`
	Gender      string  `json:"gender"`
	Country     string  `json:"country"`
	Language    string  `json:"language"`
}

// UserSummaryColumns selects exactly the fields of UserSummary.
const UserSummaryColumns = "user_id, first_name, last_name, account_type, email, profile_pic, gender, country, language"

// IdleDriver is the projection served by GET /api/get-drivers.
type IdleDriver struct {
	UserID   uint   `json:"user_id"`
	LastName string `json:"last_name"`
}
