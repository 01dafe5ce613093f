package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"messenger/internal/models"

	"github.com/redis/go-redis/v9"
)

// AllEventsChannel receives every event; receivers can also subscribe to
// their own messages:user:<id> channel.
const AllEventsChannel = "messages:events"

func UserChannel(userID int) string {
	return "messages:user:" + strconv.Itoa(userID)
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// NewRedisClient connects to addr and fails if the server does not answer a PING.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.MessageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pipe := p.client.Pipeline()
	pipe.Publish(ctx, AllEventsChannel, payload)
	if event.ReceiverID != 0 {
		pipe.Publish(ctx, UserChannel(event.ReceiverID), payload)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
