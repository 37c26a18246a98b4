package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/apperr"
	"github.com/devopscommunity/storefront/internal/app/service/pricing"
	"github.com/devopscommunity/storefront/internal/platform/razorpay"
	"github.com/devopscommunity/storefront/pkg/config"
)

type stubGateway struct {
	calls []*razorpay.OrderRequest
	err   error
}

func (g *stubGateway) KeyID() string { return "rzp_test_key" }

func (g *stubGateway) CreateOrder(_ context.Context, req *razorpay.OrderRequest) (*razorpay.Order, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	return &razorpay.Order{ID: "order_TEST123", Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt, Status: "created"}, nil
}

func configured() *config.Config {
	return &config.Config{Razorpay: config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "secret"}}
}

func newService(cfg *config.Config, gw Gateway) *Service {
	s := NewService(cfg, pricing.NewPolicy(nil), gw, zap.NewNop().Sugar())
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return s
}

func validRequest(promo string) *CreateOrderRequest {
	return &CreateOrderRequest{PromoCode: promo, Name: " Asha ", Email: "a@b.com", Contact: "+919000000000"}
}

func TestCreateOrder_PromoPricedOnServer(t *testing.T) {
	gw := &stubGateway{}
	res, err := newService(configured(), gw).CreateOrder(context.Background(), validRequest("kubedeal"))
	require.NoError(t, err)

	require.Equal(t, "order_TEST123", res.OrderID)
	require.EqualValues(t, 299900, res.Amount)
	require.Equal(t, "INR", res.Currency)
	require.Equal(t, "rzp_test_key", res.KeyID)
	require.Equal(t, "KUBEDEAL", *res.AppliedPromo)

	require.Len(t, gw.calls, 1)
	sent := gw.calls[0]
	require.EqualValues(t, 299900, sent.Amount)
	require.Equal(t, "receipt_1700000000123", sent.Receipt)
	require.Equal(t, map[string]string{
		"label":            OrderLabel,
		"promo_applied":    "KUBEDEAL",
		"customer_name":    "Asha",
		"customer_email":   "a@b.com",
		"customer_contact": "+919000000000",
	}, sent.Notes)
}

func TestCreateOrder_NoPromo(t *testing.T) {
	gw := &stubGateway{}
	res, err := newService(configured(), gw).CreateOrder(context.Background(), validRequest("NOTACODE"))
	require.NoError(t, err)
	require.EqualValues(t, 599900, res.Amount)
	require.Nil(t, res.AppliedPromo)
	require.Equal(t, "none", gw.calls[0].Notes["promo_applied"])
}

func TestCreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *CreateOrderRequest
		want error
	}{
		{name: "nil", req: nil, want: ErrNameRequired},
		{name: "blank name", req: &CreateOrderRequest{Name: "  ", Email: "a@b.com", Contact: "1"}, want: ErrNameRequired},
		{name: "missing email", req: &CreateOrderRequest{Name: "A", Contact: "1"}, want: ErrEmailRequired},
		{name: "bad email", req: &CreateOrderRequest{Name: "A", Email: "ab.com", Contact: "1"}, want: ErrEmailInvalid},
		{name: "missing contact", req: &CreateOrderRequest{Name: "A", Email: "a@b.com"}, want: ErrContactRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &stubGateway{}
			_, err := newService(configured(), gw).CreateOrder(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			require.Empty(t, gw.calls)
		})
	}
}

func TestCreateOrder_MissingCredentials(t *testing.T) {
	gw := &stubGateway{}
	_, err := newService(&config.Config{}, gw).CreateOrder(context.Background(), &CreateOrderRequest{})
	require.ErrorIs(t, err, ErrNotConfigured)
	require.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
	require.Empty(t, gw.calls)
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	gw := &stubGateway{err: errors.New("Authentication failed")}
	_, err := newService(configured(), gw).CreateOrder(context.Background(), validRequest(""))
	require.Equal(t, apperr.KindGateway, apperr.KindOf(err))
	require.Equal(t, "Authentication failed", apperr.As(err).Detail)
}
