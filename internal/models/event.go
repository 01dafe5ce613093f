package models

import "time"

type EventType string

const (
	EventSent    EventType = "sent"
	EventRead    EventType = "read"
	EventUnread  EventType = "unread"
	EventDeleted EventType = "deleted"
)

// MessageEvent describes a committed change to a message.
type MessageEvent struct {
	Type       EventType `json:"type"`
	MessageID  int       `json:"message_id"`
	SenderID   int       `json:"sender_id,omitempty"`
	ReceiverID int       `json:"receiver_id,omitempty"`
	ActorID    int       `json:"actor_id"`
	Time       time.Time `json:"time"`
}
