// Package order creates checkout orders at the payment gateway. The amount
// is always derived from the promo code on the server.
package order

import (
	"context"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/apperr"
	"github.com/devopscommunity/storefront/internal/app/service/pricing"
	"github.com/devopscommunity/storefront/internal/platform/razorpay"
	"github.com/devopscommunity/storefront/pkg/config"
	"github.com/devopscommunity/storefront/pkg/ids"
	"github.com/devopscommunity/storefront/pkg/logctx"
	"github.com/devopscommunity/storefront/pkg/metrics"
)

// OrderLabel is stored in every order's notes.
const OrderLabel = "DevOps Community Course"

// CreateOrderRequest is the checkout form. It carries no amount.
type CreateOrderRequest struct {
	PromoCode string `json:"promoCode"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
}

// CreateOrderResult holds what the browser needs to open the hosted checkout.
// Amount is in paise, as the checkout expects.
type CreateOrderResult struct {
	OrderID      string  `json:"orderId"`
	Amount       int64   `json:"amount"`
	Currency     string  `json:"currency"`
	KeyID        string  `json:"keyId"`
	AppliedPromo *string `json:"appliedPromo"`
}

// Gateway is the order-creation port, implemented by razorpay.Client.
type Gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, req *razorpay.OrderRequest) (*razorpay.Order, error)
}

type Issuer interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error)
}

var (
	ErrNotConfigured   = apperr.Configuration("payment gateway not configured")
	ErrNameRequired    = apperr.Validation("name is required")
	ErrEmailRequired   = apperr.Validation("email is required")
	ErrEmailInvalid    = apperr.Validation("email is invalid")
	ErrContactRequired = apperr.Validation("contact is required")
)

type Service struct {
	cfg     *config.Config
	pricing *pricing.Policy
	gateway Gateway
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewService(cfg *config.Config, p *pricing.Policy, gw Gateway, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, pricing: p, gateway: gw, log: log, now: time.Now}
}

func (r *CreateOrderRequest) normalize() {
	r.PromoCode = strings.TrimSpace(r.PromoCode)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Contact = strings.TrimSpace(r.Contact)
}

func (r *CreateOrderRequest) validate() error {
	switch {
	case r.Name == "":
		return ErrNameRequired
	case r.Email == "":
		return ErrEmailRequired
	case !strings.Contains(r.Email, "@"):
		return ErrEmailInvalid
	case r.Contact == "":
		return ErrContactRequired
	}
	return nil
}

func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error) {
	if !s.cfg.HasGatewayCredentials() {
		return nil, ErrNotConfigured
	}
	if req == nil {
		return nil, ErrNameRequired
	}
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}

	quote := s.pricing.Compute(req.PromoCode)
	gwReq := &razorpay.OrderRequest{
		Amount:   quote.AmountMinor(),
		Currency: quote.Currency,
		Receipt:  ids.Receipt(s.now()),
		Notes: map[string]string{
			"label":            OrderLabel,
			"promo_applied":    quote.PromoLabel(),
			"customer_name":    req.Name,
			"customer_email":   req.Email,
			"customer_contact": req.Contact,
		},
	}

	lg := logctx.FromCtx(ctx, s.log)
	o, err := s.gateway.CreateOrder(ctx, gwReq)
	if err != nil {
		lg.Errorw("order_create_failed", "receipt", gwReq.Receipt, "promo", quote.PromoLabel(), "err", err)
		return nil, apperr.Gateway("failed to create order", err)
	}
	lg.Infow("order_created", "order_id", o.ID, "amount", gwReq.Amount, "promo", quote.PromoLabel())
	metrics.Inc(metrics.OrdersIssued, quote.PromoLabel())

	currency := o.Currency
	if currency == "" {
		currency = gwReq.Currency
	}
	return &CreateOrderResult{
		OrderID:      o.ID,
		Amount:       gwReq.Amount,
		Currency:     currency,
		KeyID:        s.gateway.KeyID(),
		AppliedPromo: quote.AppliedPromo,
	}, nil
}

var Module = fx.Options(
	fx.Provide(
		func(c *razorpay.Client) Gateway { return c },
		fx.Annotate(NewService, fx.As(new(Issuer))),
		NewConfirmer,
	),
)
