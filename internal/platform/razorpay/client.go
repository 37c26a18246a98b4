// Package razorpay adapts the Razorpay SDK to the order issuer and decodes
// webhook deliveries.
package razorpay

import (
	"context"
	"errors"
	"fmt"

	rzp "github.com/razorpay/razorpay-go"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/pkg/config"
	"github.com/devopscommunity/storefront/pkg/logctx"
)

// ErrNotConfigured is returned when key id or secret is missing.
var ErrNotConfigured = errors.New("razorpay credentials not configured")

// OrderRequest is the body of POST /v1/orders.
type OrderRequest struct {
	Amount   int64 // paise
	Currency string
	Receipt  string
	Notes    map[string]string
}

func (r *OrderRequest) toMap() map[string]interface{} {
	return map[string]interface{}{
		"amount":          r.Amount,
		"currency":        r.Currency,
		"receipt":         r.Receipt,
		"payment_capture": 1,
		"notes":           lo.MapValues(r.Notes, func(v string, _ string) interface{} { return v }),
	}
}

// Order is the subset of the gateway's order entity the site uses.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

func orderFromMap(m map[string]interface{}) (*Order, error) {
	id, _ := m["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay: order response without id")
	}
	o := &Order{ID: id}
	o.Currency, _ = m["currency"].(string)
	o.Receipt, _ = m["receipt"].(string)
	o.Status, _ = m["status"].(string)
	switch v := m["amount"].(type) {
	case float64:
		o.Amount = int64(v)
	case int64:
		o.Amount = v
	case int:
		o.Amount = int64(v)
	}
	return o, nil
}

// Client creates orders through the official SDK. It is safe for concurrent
// use.
type Client struct {
	api   *rzp.Client
	keyID string
	log   *zap.SugaredLogger
}

func NewClient(cfg *config.Config, log *zap.SugaredLogger) *Client {
	c := &Client{log: log}
	if cfg.HasGatewayCredentials() {
		c.api = rzp.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
		c.keyID = cfg.Razorpay.KeyID
	} else {
		log.Warnw("razorpay credentials missing; order creation disabled")
	}
	return c
}

// KeyID is the public key handed to the browser checkout.
func (c *Client) KeyID() string { return c.keyID }

// CreateOrder calls POST /v1/orders. The SDK does not take a context, so
// cancellation only applies before the request is sent.
func (c *Client) CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error) {
	if c.api == nil {
		return nil, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := c.api.Order.Create(req.toMap(), nil)
	if err != nil {
		logctx.FromCtx(ctx, c.log).Warnw("razorpay_order_create_failed", "receipt", req.Receipt, "err", err)
		return nil, err
	}
	o, err := orderFromMap(res)
	if err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, c.log).Infow("razorpay_order_created", "order_id", o.ID, "amount", o.Amount, "receipt", o.Receipt)
	return o, nil
}
