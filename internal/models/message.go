package models

import "time"

type Message struct {
	ID         int       `json:"id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Time       time.Time `json:"time"`
	Content    string    `json:"content"`
	ReadStatus bool      `json:"read_status"`
}

// NewMessage is what a caller submits; the sender is the caller itself.
type NewMessage struct {
	ReceiverID int    `json:"receiver_id"`
	Content    string `json:"content"`
}

type NewMessageID struct {
	ID int `json:"id"`
}

// MessageFilter narrows a listing. Nil fields impose no constraint.
type MessageFilter struct {
	SenderID   *int
	ReceiverID *int
	ReadStatus *bool
}
