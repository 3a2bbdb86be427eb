package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testEnvelope() Envelope {
	return NewEnvelope(EventOrderCreated, OrderCreatedPayload{
		OrderID:    "8b6f3f56-5d43-4a34-9d7b-0c3a6a9b6f00",
		UserID:     "2f1d9e1c-7a1c-4f2e-9a3b-5d8c4e2b7a10",
		TotalCents: 700000,
	})
}

func TestPublishAfterContextCancelIsDropped(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "shop.orders", 4).(*kafkaPublisher)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop after context cancel")
	}

	// A handler finishing a request during shutdown must not crash the
	// process; the event is simply dropped.
	assert.NotPanics(t, func() {
		p.Publish("order-1", testEnvelope())
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "shop.orders", 4).(*kafkaPublisher)

	assert.NotPanics(t, func() {
		p.Close()
		p.Close()
	})
	assert.NotPanics(t, func() {
		p.Publish("order-1", testEnvelope())
	})
}

func TestCloseAfterContextCancel(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "shop.orders", 4).(*kafkaPublisher)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop after context cancel")
	}

	assert.NotPanics(t, p.Close)
}
