package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher emits order lifecycle events after the owning transaction has
// committed. Publishing is best effort and never fails the request.
type Publisher interface {
	Publish(key string, env Envelope)
	Start(ctx context.Context)
	Close()
}

type kafkaPublisher struct {
	w     *kafka.Writer
	inbox chan kafka.Message
	done  chan struct{}
	once  sync.Once
}

func NewKafkaPublisher(brokers []string, topic string, buf int) Publisher {
	return &kafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

func (p *kafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer func() {
			if err := p.w.Close(); err != nil {
				log.Printf("WARN: event writer close failed: %v", err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				p.stop()
				p.drain()
				return
			case <-p.done:
				p.drain()
				return
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *kafkaPublisher) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		log.Printf("WARN: event publish failed: %v", err)
	}
}

// drain flushes whatever is buffered at shutdown. The inbox is never closed,
// so a Publish racing shutdown at worst parks a message that is dropped.
func (p *kafkaPublisher) drain() {
	for {
		select {
		case m := <-p.inbox:
			p.write(m)
		default:
			return
		}
	}
}

func (p *kafkaPublisher) stop() {
	p.once.Do(func() { close(p.done) })
}

// Publish queues the event without blocking the request path. A full inbox
// or a stopped publisher drops the event rather than stalling order placement.
func (p *kafkaPublisher) Publish(key string, env Envelope) {
	value, err := json.Marshal(env)
	if err != nil {
		log.Printf("WARN: event marshal failed: %v", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}
	select {
	case <-p.done:
		log.Printf("WARN: publisher stopped, dropping %s for %s", env.EventType, key)
		return
	default:
	}
	select {
	case p.inbox <- msg:
	default:
		log.Printf("WARN: event inbox full, dropping %s for %s", env.EventType, key)
	}
}

func (p *kafkaPublisher) Close() { p.stop() }

// NoopPublisher is used when no brokers are configured, keeping the
// service layer free of nil checks.
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, Envelope) {}
func (NoopPublisher) Start(context.Context)    {}
func (NoopPublisher) Close()                   {}
