// Package pricing owns the course price and promo table. Prices are whole
// rupees; gateway amounts are derived with AmountMinor.
package pricing

import (
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	Currency       = "INR"
	OriginalAmount = 5999
)

// promoPrices maps an upper-case promo code to its discounted price.
var promoPrices = map[string]int64{
	"KUBEDEAL": 2999,
	"DEVOPS20": 4799,
}

// Quote is the price the server will charge for a given promo code.
type Quote struct {
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
	AppliedPromo   *string `json:"appliedPromo"`
	OriginalAmount int64   `json:"originalAmount"`
}

// AmountMinor returns the amount in paise.
func (q Quote) AmountMinor() int64 { return q.Amount * 100 }

// PromoLabel is the applied code or "none".
func (q Quote) PromoLabel() string {
	if q.AppliedPromo == nil {
		return "none"
	}
	return *q.AppliedPromo
}

type Policy struct {
	log *zap.SugaredLogger
}

func NewPolicy(log *zap.SugaredLogger) *Policy { return &Policy{log: log} }

// Compute never fails: unknown, blank or missing codes fall back to the
// original price.
func (p *Policy) Compute(promoCode string) Quote {
	code := strings.ToUpper(strings.TrimSpace(promoCode))
	q := Quote{Amount: OriginalAmount, Currency: Currency, OriginalAmount: OriginalAmount}
	if price, ok := promoPrices[code]; ok {
		q.Amount = price
		q.AppliedPromo = &code
	}
	if p != nil && p.log != nil {
		p.log.Debugw("price_computed", "promo_input", promoCode, "applied", q.PromoLabel(), "amount", q.Amount)
	}
	return q
}

var Module = fx.Options(
	fx.Provide(NewPolicy),
)
