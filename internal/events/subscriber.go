package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	maxRetries = 3
	retryDelay = 2 * time.Second
)

// MessageHandler processes one message. A returned error triggers a retry.
type MessageHandler func(ctx context.Context, data []byte) error

// RetryingSubscriber runs a handler for every message on a subject, retrying
// failures and forwarding messages that never succeed to a dead letter subject.
type RetryingSubscriber struct {
	conn       *nats.Conn
	subject    string
	dlqSubject string
	handler    MessageHandler
	delay      time.Duration
	logger     *slog.Logger
}

func NewRetryingSubscriber(conn *nats.Conn, subject, dlqSubject string, handler MessageHandler, logger *slog.Logger) *RetryingSubscriber {
	return &RetryingSubscriber{
		conn:       conn,
		subject:    subject,
		dlqSubject: dlqSubject,
		handler:    handler,
		delay:      retryDelay,
		logger:     logger,
	}
}

func (s *RetryingSubscriber) Subscribe() (*nats.Subscription, error) {
	sub, err := s.conn.Subscribe(s.subject, func(msg *nats.Msg) {
		s.Handle(context.Background(), msg.Data)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Subscriber listening", "subject", s.subject)
	return sub, nil
}

// Handle runs the handler up to maxRetries times and reports whether it succeeded.
func (s *RetryingSubscriber) Handle(ctx context.Context, data []byte) bool {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = s.handler(ctx, data)
		if err == nil {
			return true
		}

		s.logger.Warn("Handling message failed, retrying",
			"subject", s.subject, "attempt", attempt, "delay", s.delay, "error", err)

		if attempt < maxRetries {
			time.Sleep(s.delay)
		}
	}

	s.logger.Error("Message failed after all attempts",
		"subject", s.subject, "attempts", maxRetries, "error", err)

	if s.conn == nil {
		return false
	}

	if err := s.conn.Publish(s.dlqSubject, data); err != nil {
		s.logger.Error("Failed to publish to DLQ", "subject", s.dlqSubject, "error", err)
	} else {
		s.logger.Info("Published failed message to DLQ", "subject", s.dlqSubject)
	}

	return false
}
