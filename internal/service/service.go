package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"messenger/internal/models"
)

//go:generate mockgen -source=service.go -destination=mock_service.go -package=service

var (
	ErrNotFound  = errors.New("message not found")
	ErrForbidden = errors.New("caller is not the receiver of the message")
)

// MessageStore persists messages. Every mutating call commits on its own.
type MessageStore interface {
	GetByID(ctx context.Context, id int) (models.Message, error)
	List(ctx context.Context, filter models.MessageFilter) ([]models.Message, error)
	Insert(ctx context.Context, senderID int, msg models.NewMessage) (int, error)
	SetReadStatus(ctx context.Context, id int, read bool) error
	Delete(ctx context.Context, id int) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event models.MessageEvent) error
}

type MessageService struct {
	store     MessageStore
	publisher EventPublisher
	now       func() time.Time
}

func NewMessageService(store MessageStore, publisher EventPublisher) *MessageService {
	return &MessageService{store: store, publisher: publisher, now: time.Now}
}

func (s *MessageService) ListMessages(ctx context.Context, filter models.MessageFilter) ([]models.Message, error) {
	messages, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

func (s *MessageService) GetMessage(ctx context.Context, id int) (models.Message, error) {
	return s.store.GetByID(ctx, id)
}

func (s *MessageService) SendMessage(ctx context.Context, callerID int, msg models.NewMessage) (int, error) {
	id, err := s.store.Insert(ctx, callerID, msg)
	if err != nil {
		return 0, err
	}
	s.publish(ctx, models.MessageEvent{
		Type:       models.EventSent,
		MessageID:  id,
		SenderID:   callerID,
		ReceiverID: msg.ReceiverID,
		ActorID:    callerID,
	})
	return id, nil
}

func (s *MessageService) GetReadStatus(ctx context.Context, id int) (bool, error) {
	msg, err := s.store.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return msg.ReadStatus, nil
}

func (s *MessageService) MarkRead(ctx context.Context, callerID, id int) error {
	return s.setReadStatus(ctx, callerID, id, true)
}

func (s *MessageService) MarkUnread(ctx context.Context, callerID, id int) error {
	return s.setReadStatus(ctx, callerID, id, false)
}

func (s *MessageService) setReadStatus(ctx context.Context, callerID, id int, read bool) error {
	msg, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutateReadState(msg, callerID) {
		if read {
			return fmt.Errorf("cannot mark someone else's message as read: %w", ErrForbidden)
		}
		return fmt.Errorf("cannot mark someone else's message as unread: %w", ErrForbidden)
	}
	if err := s.store.SetReadStatus(ctx, id, read); err != nil {
		return err
	}
	eventType := models.EventUnread
	if read {
		eventType = models.EventRead
	}
	s.publish(ctx, models.MessageEvent{
		Type:       eventType,
		MessageID:  id,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		ActorID:    callerID,
	})
	return nil
}

// DeleteMessage removes a message for any authenticated caller.
// TODO: restrict to sender or receiver once product settles the delete policy.
func (s *MessageService) DeleteMessage(ctx context.Context, callerID, id int) error {
	// Loaded first so the event can reach the receiver's channel.
	msg, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, models.MessageEvent{
		Type:       models.EventDeleted,
		MessageID:  id,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		ActorID:    callerID,
	})
	return nil
}

func (s *MessageService) publish(ctx context.Context, event models.MessageEvent) {
	if s.publisher == nil {
		return
	}
	event.Time = s.now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Error publishing %s event for message %d: %v", event.Type, event.MessageID, err)
	}
}
