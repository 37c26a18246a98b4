package order

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/apperr"
	"github.com/devopscommunity/storefront/pkg/config"
	"github.com/devopscommunity/storefront/pkg/logctx"
	"github.com/devopscommunity/storefront/pkg/signature"
)

// ConfirmRequest is what the hosted checkout hands back to the browser after
// a successful payment.
type ConfirmRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type ConfirmResult struct {
	Verified  bool   `json:"verified"`
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
}

var (
	ErrConfirmFieldsRequired = apperr.Validation("razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
	ErrConfirmSignature      = apperr.Authentication("invalid payment signature")
)

// Confirmer checks checkout confirmations against the key secret. It does not
// record anything; fulfilment is driven by the webhook.
type Confirmer struct {
	secret string
	log    *zap.SugaredLogger
}

func NewConfirmer(cfg *config.Config, log *zap.SugaredLogger) *Confirmer {
	return &Confirmer{secret: cfg.Razorpay.KeySecret, log: log}
}

func (c *Confirmer) Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResult, error) {
	if c.secret == "" {
		return nil, ErrNotConfigured
	}
	if req == nil {
		return nil, ErrConfirmFieldsRequired
	}
	orderID := strings.TrimSpace(req.OrderID)
	paymentID := strings.TrimSpace(req.PaymentID)
	if orderID == "" || paymentID == "" || req.Signature == "" {
		return nil, ErrConfirmFieldsRequired
	}
	lg := logctx.FromCtx(ctx, c.log).With("order_id", orderID, "payment_id", paymentID)
	if !signature.Verify(signature.ConfirmationPayload(orderID, paymentID), req.Signature, c.secret) {
		lg.Warnw("payment_confirmation_rejected")
		return nil, ErrConfirmSignature
	}
	lg.Infow("payment_confirmed")
	return &ConfirmResult{Verified: true, OrderID: orderID, PaymentID: paymentID}, nil
}
