package models

import "time"

type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"index:idx_messages_pair,priority:1" json:"sender_id"`
	ReceiverID uint      `gorm:"index:idx_messages_pair,priority:2" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Timestamp  time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`

	Sender   *User `gorm:"foreignKey:SenderID;references:UserID" json:"-"`
	Receiver *User `gorm:"foreignKey:ReceiverID;references:UserID" json:"-"`
}

// ConversationMessage is a Message joined with its sender's name.
type ConversationMessage struct {
	ID              uint      `json:"id"`
	SenderID        uint      `json:"sender_id"`
	ReceiverID      uint      `json:"receiver_id"`
	Content         string    `json:"content"`
	Timestamp       time.Time `json:"timestamp"`
	SenderFirstName string    `json:"sender_first_name"`
	SenderLastName  string    `json:"sender_last_name"`
}
