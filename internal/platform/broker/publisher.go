// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package broker publishes domain events to RabbitMQ.

Each event type has its own durable queue named after the event
("user.registered", "password.reset_requested"). Messages are JSON and
marked persistent so they survive a broker restart. Consumers (mailers,
audit) live outside this service.

Publishing is best-effort from the caller's point of view: callers log a
failed publish and carry on, so a broker outage never blocks sign-up or
password recovery.
*/
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher publishes JSON events over a single AMQP channel.
//
// AMQP channels are not safe for concurrent use, so publishes are serialized.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	declared map[string]bool
	logger   *slog.Logger
}

// Dial connects to the broker at url and opens a channel.
func Dial(url string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("broker: dial failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("broker: channel open failed: %w", err)
	}

	logger.Info("amqp publisher connected")

	return &AMQPPublisher{
		conn:     conn,
		channel:  channel,
		declared: make(map[string]bool),
		logger:   logger,
	}, nil
}

// Publish marshals payload and publishes it to the queue named topic.
func (publisher *AMQPPublisher) Publish(context context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("broker: marshal %s event failed: %w", topic, err)
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	if !publisher.declared[topic] {
		// Durable so messages survive broker restarts.
		if _, err := publisher.channel.QueueDeclare(topic, true, false, false, false, nil); err != nil {
			return fmt.Errorf("broker: declare queue %s failed: %w", topic, err)
		}
		publisher.declared[topic] = true
	}

	message := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// Default exchange; the routing key is the queue name.
	if err := publisher.channel.PublishWithContext(context, "", topic, false, false, message); err != nil {
		return fmt.Errorf("broker: publish %s failed: %w", topic, err)
	}

	publisher.logger.DebugContext(context, "event_published", slog.String("topic", topic))
	return nil
}

// Close closes the channel and the connection.
func (publisher *AMQPPublisher) Close() error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	if err := publisher.channel.Close(); err != nil {
		_ = publisher.conn.Close()
		return fmt.Errorf("broker: channel close failed: %w", err)
	}
	return publisher.conn.Close()
}

// Discard drops every event. It is used when event publishing is disabled.
type Discard struct{}

// Publish implements the publisher contract and does nothing.
func (Discard) Publish(context.Context, string, any) error { return nil }
