package razorpay

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EventPaymentCaptured is the only event that triggers a confirmation email.
const EventPaymentCaptured = "payment.captured"

// Event is a decoded webhook delivery: either *PaymentCapturedEvent or
// *OtherEvent.
type Event interface {
	Name() string
}

// PaymentCapturedEvent carries the payment entity of a captured payment.
// PaymentID is the idempotency key.
type PaymentCapturedEvent struct {
	PaymentID   string
	AmountMinor int64
	Currency    string
	Email       string
	Contact     string
	Notes       Notes
}

func (*PaymentCapturedEvent) Name() string { return EventPaymentCaptured }

// CustomerName prefers the name captured at order creation.
func (e *PaymentCapturedEvent) CustomerName() string { return e.Notes["customer_name"] }

// OtherEvent is any delivery the site acknowledges without acting on,
// including payment.captured deliveries that lack a payment entity.
type OtherEvent struct {
	Event string
}

func (e *OtherEvent) Name() string { return e.Event }

// Notes is the free-form key/value map attached to orders and payments.
// Razorpay serialises an empty map as [], and values may be numbers.
type Notes map[string]string

func (n *Notes) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte("[]")) {
		*n = Notes{}
		return nil
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		var arr []interface{}
		if json.Unmarshal(b, &arr) == nil {
			*n = Notes{}
			return nil
		}
		return err
	}
	out := make(Notes, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case nil:
			out[k] = ""
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	*n = out
	return nil
}

type envelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity *paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Notes    Notes  `json:"notes"`
}

// ParseEvent decodes a webhook body. Callers must verify the signature over
// the same bytes first.
func ParseEvent(body []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode webhook body: %w", err)
	}
	if env.Event != EventPaymentCaptured {
		return &OtherEvent{Event: env.Event}, nil
	}
	if env.Payload.Payment == nil || env.Payload.Payment.Entity == nil || env.Payload.Payment.Entity.ID == "" {
		return &OtherEvent{Event: env.Event}, nil
	}
	p := env.Payload.Payment.Entity
	notes := p.Notes
	if notes == nil {
		notes = Notes{}
	}
	return &PaymentCapturedEvent{
		PaymentID:   p.ID,
		AmountMinor: p.Amount,
		Currency:    p.Currency,
		Email:       p.Email,
		Contact:     p.Contact,
		Notes:       notes,
	}, nil
}
