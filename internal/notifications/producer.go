package notifications

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer is an asynchronous kafka publisher. Publishing never blocks the
// request path: messages go through a buffered inbox and a single writer
// goroutine, and write failures are logged, not returned.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

// Start runs the writer loop until ctx is cancelled, then drains whatever
// is already buffered and closes the writer. The inbox is never closed:
// Publish may race with shutdown, and a send on a closed channel would
// panic inside the request path. Late messages are dropped instead.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				for {
					select {
					case m := <-p.inbox:
						p.write(m)
					default:
						_ = p.w.Close()
						return
					}
				}
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		log.Printf("kafka write failed: %v", err)
	}
}

// Publish enqueues a message. Drops it with a log line when the producer
// has stopped or the inbox is full rather than blocking or panicking in
// the caller.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	select {
	case <-p.closeCh:
		log.Printf("notification event dropped: producer stopped")
		return
	default:
	}
	m := kafka.Message{Key: key, Value: value, Time: time.Now(), Headers: headers}
	select {
	case p.inbox <- m:
	default:
		log.Printf("notification event dropped: producer inbox full")
	}
}

// WaitClosed blocks until the writer goroutine has drained and exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
