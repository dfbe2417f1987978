package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"order-notification-service/internal/models"
)

// NotificationType discriminates which order lifecycle event occurred.
type NotificationType string

const (
	OrderCreated   NotificationType = "OrderCreated"
	OrderCanceled  NotificationType = "OrderCanceled"
	OrderDelivered NotificationType = "OrderDelivered"
)

// ErrMalformedEnvelope reports a record body that cannot be decoded into a
// typed notification message. It aborts only the offending record.
var ErrMalformedEnvelope = errors.New("malformed notification envelope")

// topicEnvelope is the outer wrapper the topic puts around the notification
// body before it lands on the queue.
type topicEnvelope struct {
	Subject string `json:"Subject"`
	Message string `json:"Message"`
}

// envelope is the inner discriminated union: Payload's shape is implied by Type.
type envelope struct {
	Type    NotificationType `json:"Type"`
	Payload json.RawMessage  `json:"Payload"`
}

// orderPayload is the payload shape shared by all order lifecycle types.
type orderPayload struct {
	Order models.Order `json:"Order"`
}

// Message is a decoded, typed notification.
type Message struct {
	Type    NotificationType
	Subject string
	Order   models.Order
	known   bool
}

// Known reports whether the message type is one this service handles.
// Unknown types decode without error so producers can roll out new
// notification types ahead of this consumer.
func (m *Message) Known() bool { return m.known }

// Decode unwraps one raw queue record body into a typed Message. Decoding is
// deterministic: the same body always yields a structurally equal Message.
func Decode(body []byte) (*Message, error) {
	var outer topicEnvelope
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, fmt.Errorf("%w: invalid outer wrapper: %v", ErrMalformedEnvelope, err)
	}
	if outer.Message == "" {
		return nil, fmt.Errorf("%w: empty message body", ErrMalformedEnvelope)
	}

	var env envelope
	if err := json.Unmarshal([]byte(outer.Message), &env); err != nil {
		return nil, fmt.Errorf("%w: invalid notification body: %v", ErrMalformedEnvelope, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing notification type", ErrMalformedEnvelope)
	}

	msg := &Message{Type: env.Type, Subject: outer.Subject}
	switch env.Type {
	case OrderCreated, OrderCanceled, OrderDelivered:
		var p orderPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %s payload: %v", ErrMalformedEnvelope, env.Type, err)
		}
		msg.Order = p.Order
		msg.known = true
	}

	return msg, nil
}
