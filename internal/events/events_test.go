package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"messenger/internal/models"
	"messenger/internal/service"

	"github.com/segmentio/kafka-go/protocol"
	"github.com/segmentio/kafka-go/protocol/metadata"
	"github.com/segmentio/kafka-go/protocol/produce"
)

type recorder struct {
	got []models.MessageEvent
	err error
}

func (r *recorder) Publish(_ context.Context, e models.MessageEvent) error {
	r.got = append(r.got, e)
	return r.err
}

func TestMultiFansOut(t *testing.T) {
	ok := &recorder{}
	broken := &recorder{err: errors.New("unreachable")}
	multi := Multi{broken, ok}
	event := models.MessageEvent{Type: models.EventSent, MessageID: 1, ActorID: 1}

	err := multi.Publish(context.Background(), event)
	if !errors.Is(err, broken.err) {
		t.Errorf("expected joined error, got %v", err)
	}
	if len(ok.got) != 1 || len(broken.got) != 1 {
		t.Errorf("expected every publisher to see the event, got %d and %d", len(ok.got), len(broken.got))
	}
	if err := (Multi{}).Publish(context.Background(), event); err != nil {
		t.Errorf("empty Multi: unexpected error %v", err)
	}
	var _ service.EventPublisher = multi
}

func TestNop(t *testing.T) {
	if err := (Nop{}).Publish(context.Background(), models.MessageEvent{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUserChannel(t *testing.T) {
	if got := UserChannel(7); got != "messages:user:7" {
		t.Errorf("unexpected channel %q", got)
	}
}

func TestKafkaPublisherUnreachableBroker(t *testing.T) {
	p := NewKafkaPublisher([]string{"127.0.0.1:1"}, "message-events")
	defer p.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := p.Publish(ctx, models.MessageEvent{Type: models.EventSent, MessageID: 1}); err == nil {
		t.Error("expected error from unreachable broker")
	}
}

type fakeBroker struct {
	topic    string
	produced atomic.Int64
}

func (b *fakeBroker) RoundTrip(_ context.Context, _ net.Addr, req protocol.Message) (protocol.Message, error) {
	switch req.(type) {
	case *metadata.Request:
		return &metadata.Response{
			Brokers: []metadata.ResponseBroker{{NodeID: 1, Host: "127.0.0.1", Port: 9092}},
			Topics: []metadata.ResponseTopic{{
				Name:       b.topic,
				Partitions: []metadata.ResponsePartition{{PartitionIndex: 0, LeaderID: 1}},
			}},
		}, nil
	case *produce.Request:
		n := b.produced.Add(1)
		return &produce.Response{
			Topics: []produce.ResponseTopic{{
				Topic:      b.topic,
				Partitions: []produce.ResponsePartition{{Partition: 0, BaseOffset: n}},
			}},
		}, nil
	default:
		return nil, fmt.Errorf("unexpected request %T", req)
	}
}

func TestKafkaPublisherFlushesEachEvent(t *testing.T) {
	broker := &fakeBroker{topic: "message-events"}
	p := NewKafkaPublisher([]string{"127.0.0.1:9092"}, broker.topic)
	p.writer.Transport = broker
	defer p.Close()

	for i := 1; i <= 3; i++ {
		start := time.Now()
		err := p.Publish(context.Background(), models.MessageEvent{Type: models.EventSent, MessageID: i})
		if err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
		if took := time.Since(start); took > 250*time.Millisecond {
			t.Errorf("publish %d took %v", i, took)
		}
	}
	if n := broker.produced.Load(); n != 3 {
		t.Errorf("expected 3 produce requests, got %d", n)
	}
}

func TestRedisPublisher(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := NewRedisClient(ctx, addr, os.Getenv("TEST_REDIS_PASSWORD"))
	if err != nil {
		t.Fatal(err)
	}
	p := NewRedisPublisher(client)
	defer p.Close()

	sub := client.Subscribe(ctx, UserChannel(2))
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	event := models.MessageEvent{Type: models.EventSent, MessageID: 5, SenderID: 1, ReceiverID: 2, ActorID: 1}
	if err := p.Publish(ctx, event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var got models.MessageEvent
		if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
			t.Fatal(err)
		}
		if got.MessageID != 5 || got.Type != models.EventSent {
			t.Errorf("unexpected event %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}
