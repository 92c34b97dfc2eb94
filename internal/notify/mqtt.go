package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher is the part of an MQTT client the dispatcher needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type appPayload struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	OfferID   string `json:"offer_id,omitempty"`
	Kind      string `json:"kind"`
	Text      string `json:"text"`
}

// MQTTDispatcher publishes messaging-app notifications to <prefix>/<handle>/offers.
type MQTTDispatcher struct {
	client  Publisher
	prefix  string
	qos     byte
	timeout time.Duration
}

// NewMQTTClient connects to the broker.
func NewMQTTClient(broker, clientID string, optsFunc func(*mqtt.ClientOptions)) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	if optsFunc != nil {
		optsFunc(opts)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	return client, nil
}

// NewMQTTDispatcher creates a new MQTTDispatcher publishing with QoS 1.
func NewMQTTDispatcher(client Publisher, prefix string, timeout time.Duration) *MQTTDispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MQTTDispatcher{
		client:  client,
		prefix:  strings.Trim(prefix, "/"),
		qos:     1,
		timeout: timeout,
	}
}

// Topic returns the topic a handle's offers are published to.
func (d *MQTTDispatcher) Topic(handle string) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if h == "" {
		return "", ErrEmptyRecipient
	}
	if strings.ContainsAny(h, "/+#") {
		return "", fmt.Errorf("invalid messaging handle %q", handle)
	}
	if d.prefix == "" {
		return h + "/offers", nil
	}
	return d.prefix + "/" + h + "/offers", nil
}

// Dispatch implements Dispatcher.
func (d *MQTTDispatcher) Dispatch(ctx context.Context, msg Message) error {
	topic, err := d.Topic(msg.Recipient)
	if err != nil {
		return Permanent(err)
	}

	p := appPayload{
		ID:        msg.ID.String(),
		BookingID: msg.BookingID.String(),
		Kind:      string(msg.Kind),
		Text:      msg.Body,
	}
	if msg.OfferID != nil {
		p.OfferID = msg.OfferID.String()
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return Permanent(fmt.Errorf("encode app payload: %w", err))
	}

	token := d.client.Publish(topic, d.qos, false, payload)

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt publish %s: %w", topic, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("mqtt publish %s: timeout after %s", topic, d.timeout)
	}
}
