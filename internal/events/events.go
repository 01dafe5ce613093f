package events

import (
	"context"
	"errors"

	"messenger/internal/models"
	"messenger/internal/service"
)

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, models.MessageEvent) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []service.EventPublisher

func (m Multi) Publish(ctx context.Context, event models.MessageEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ service.EventPublisher = Nop{}
	_ service.EventPublisher = Multi(nil)
)
