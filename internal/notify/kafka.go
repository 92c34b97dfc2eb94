package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

var newSyncProducer = sarama.NewSyncProducer

// smsPayload is the message the SMS gateway consumes.
type smsPayload struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	OfferID   string    `json:"offer_id,omitempty"`
	Kind      string    `json:"kind"`
	To        string    `json:"to"`
	Body      string    `json:"body"`
	QueuedAt  time.Time `json:"queued_at"`
}

// KafkaDispatcher publishes SMS notifications to the gateway topic.
type KafkaDispatcher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

// NewKafkaDispatcher connects a sync producer. It returns nil, nil when Kafka is not configured.
func NewKafkaDispatcher(brokers []string, topic string) (*KafkaDispatcher, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 0

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewKafkaDispatcherWithProducer(p, topic), nil
}

// NewKafkaDispatcherWithProducer wraps an existing producer.
func NewKafkaDispatcherWithProducer(p sarama.SyncProducer, topic string) *KafkaDispatcher {
	return &KafkaDispatcher{producer: p, topic: topic, now: func() time.Time { return time.Now().UTC() }}
}

// Dispatch implements Dispatcher.
func (d *KafkaDispatcher) Dispatch(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.Recipient) == "" {
		return Permanent(ErrEmptyRecipient)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p := smsPayload{
		ID:        msg.ID.String(),
		BookingID: msg.BookingID.String(),
		Kind:      string(msg.Kind),
		To:        msg.Recipient,
		Body:      msg.Body,
		QueuedAt:  d.now(),
	}
	if msg.OfferID != nil {
		p.OfferID = msg.OfferID.String()
	}
	value, err := json.Marshal(p)
	if err != nil {
		return Permanent(fmt.Errorf("encode sms payload: %w", err))
	}

	_, _, err = d.producer.SendMessage(&sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(msg.Recipient),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		if errors.Is(err, sarama.ErrMessageSizeTooLarge) || errors.Is(err, sarama.ErrInvalidMessage) {
			return Permanent(fmt.Errorf("publish sms: %w", err))
		}
		return fmt.Errorf("publish sms: %w", err)
	}
	return nil
}

// Close closes the producer.
func (d *KafkaDispatcher) Close() error {
	if d == nil {
		return nil
	}
	return d.producer.Close()
}
