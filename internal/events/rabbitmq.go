package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	redialMinBackoff = 500 * time.Millisecond
	redialMaxBackoff = 30 * time.Second
)

// session is one broker connection with its publishing channel.
type session interface {
	Publish(ctx context.Context, queue string, msg amqp.Publishing) error
	// Done is closed once the connection or the channel has gone away.
	Done() <-chan struct{}
	Close() error
}

// RabbitPublisher publishes events to a durable queue on the default exchange.
// A lost connection is redialed in the background with exponential backoff,
// and Publish redials once if it finds the session closed.
type RabbitPublisher struct {
	queue  string
	dial   func() (session, error)
	logger *slog.Logger

	minBackoff time.Duration
	maxBackoff time.Duration

	mu     sync.Mutex // amqp channels are not safe for concurrent publishing
	sess   session
	closed bool
	stop   chan struct{}
}

// NewRabbitPublisher dials url and declares the durable queue.
func NewRabbitPublisher(url, queue string, logger *slog.Logger) (*RabbitPublisher, error) {
	if url == "" {
		return nil, fmt.Errorf("rabbitmq url is required")
	}
	if queue == "" {
		queue = "review.events"
	}

	return newRabbitPublisher(queue, func() (session, error) {
		return dialSession(url, queue)
	}, logger)
}

func newRabbitPublisher(queue string, dial func() (session, error), logger *slog.Logger) (*RabbitPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &RabbitPublisher{
		queue:      queue,
		dial:       dial,
		logger:     logger,
		minBackoff: redialMinBackoff,
		maxBackoff: redialMaxBackoff,
		stop:       make(chan struct{}),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event ReviewEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return amqp.ErrClosed
	}
	if p.sess == nil || isDone(p.sess) {
		if err := p.connectLocked(); err != nil {
			return err
		}
	}

	err = p.sess.Publish(ctx, p.queue, msg)
	if errors.Is(err, amqp.ErrClosed) {
		// the close notification can trail the failing publish
		if err := p.connectLocked(); err != nil {
			return err
		}
		err = p.sess.Publish(ctx, p.queue, msg)
	}
	return err
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	close(p.stop)
	if p.sess == nil {
		return nil
	}
	return p.sess.Close()
}

// connectLocked replaces the current session. Callers hold p.mu.
func (p *RabbitPublisher) connectLocked() error {
	sess, err := p.dial()
	if err != nil {
		return err
	}
	if p.sess != nil {
		p.sess.Close()
	}
	p.sess = sess
	go p.watch(sess)
	return nil
}

// watch waits for sess to drop and redials until a new session is up or
// the publisher is closed.
func (p *RabbitPublisher) watch(sess session) {
	select {
	case <-sess.Done():
	case <-p.stop:
		return
	}
	p.logger.Warn("rabbitmq connection lost, redialing", "queue", p.queue)

	delay := p.minBackoff
	for {
		p.mu.Lock()
		if p.closed || p.sess != sess {
			// closed, or Publish already redialed
			p.mu.Unlock()
			return
		}
		err := p.connectLocked()
		p.mu.Unlock()
		if err == nil {
			p.logger.Info("rabbitmq reconnected", "queue", p.queue)
			return
		}

		p.logger.Warn("rabbitmq redial failed", "error", err, "retry_in", delay)
		select {
		case <-time.After(delay):
		case <-p.stop:
			return
		}
		delay = min(delay*2, p.maxBackoff)
	}
}

func isDone(sess session) bool {
	select {
	case <-sess.Done():
		return true
	default:
		return false
	}
}

type amqpSession struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	done chan struct{}
}

func dialSession(url, queue string) (session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare RabbitMQ queue: %w", err)
	}

	s := &amqpSession{conn: conn, ch: ch, done: make(chan struct{})}
	connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
	chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		select {
		case <-connClosed:
		case <-chClosed:
		}
		close(s.done)
	}()
	return s, nil
}

func (s *amqpSession) Publish(ctx context.Context, queue string, msg amqp.Publishing) error {
	return s.ch.PublishWithContext(ctx, "", queue, false, false, msg)
}

func (s *amqpSession) Done() <-chan struct{} { return s.done }

func (s *amqpSession) Close() error {
	if err := s.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		s.conn.Close()
		return err
	}
	if err := s.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}
