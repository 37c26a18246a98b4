// Package notifier renders and sends customer and staff emails.
package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/platform/mailer"
	"github.com/devopscommunity/storefront/pkg/config"
	"github.com/devopscommunity/storefront/pkg/logctx"
	"github.com/devopscommunity/storefront/pkg/metrics"
)

// FailurePolicy decides what a delivery failure means to the caller.
type FailurePolicy int

const (
	// FailurePropagate returns the delivery error.
	FailurePropagate FailurePolicy = iota
	// FailureSwallow logs the delivery error and returns nil.
	FailureSwallow
)

func (p FailurePolicy) String() string {
	if p == FailureSwallow {
		return "swallow"
	}
	return "propagate"
}

const (
	kindPaymentConfirmation = "payment_confirmation"
	kindInquiryAlert        = "inquiry_alert"
)

type PaymentConfirmation struct {
	Email       string
	AmountMinor int64
	Currency    string
	PaymentID   string
	Name        string
	Contact     string
}

type InquiryAlert struct {
	Name        string
	Email       string
	Phone       string
	Type        string
	Message     string
	SubmittedAt time.Time
}

type Notifier interface {
	SendPaymentConfirmation(ctx context.Context, msg PaymentConfirmation, policy FailurePolicy) error
	SendInquiryAlert(ctx context.Context, msg InquiryAlert, policy FailurePolicy) error
}

type Service struct {
	sender    mailer.Sender
	inquiryTo string
	log       *zap.SugaredLogger
}

func NewService(cfg *config.Config, sender mailer.Sender, log *zap.SugaredLogger) *Service {
	return &Service{sender: sender, inquiryTo: cfg.Mail.InquiryTo, log: log}
}

func (s *Service) SendPaymentConfirmation(ctx context.Context, msg PaymentConfirmation, policy FailurePolicy) error {
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		name = "there"
	}
	if msg.Email == "" {
		return s.finish(ctx, kindPaymentConfirmation, policy, fmt.Errorf("payment %s has no email", msg.PaymentID), "payment_id", msg.PaymentID)
	}
	body, err := render(paymentConfirmationTmpl, paymentConfirmationView{
		Name:      name,
		Amount:    FormatAmount(msg.AmountMinor, msg.Currency),
		PaymentID: msg.PaymentID,
		Contact:   msg.Contact,
	})
	if err != nil {
		return s.finish(ctx, kindPaymentConfirmation, policy, fmt.Errorf("render: %w", err), "payment_id", msg.PaymentID)
	}
	err = s.sender.Send(ctx, &mailer.Message{
		To:      msg.Email,
		Subject: "Payment Confirmation - DevOps Community",
		HTML:    body,
	})
	return s.finish(ctx, kindPaymentConfirmation, policy, err, "payment_id", msg.PaymentID, "to", msg.Email)
}

func (s *Service) SendInquiryAlert(ctx context.Context, msg InquiryAlert, policy FailurePolicy) error {
	at := msg.SubmittedAt
	if at.IsZero() {
		at = time.Now()
	}
	body, err := render(inquiryAlertTmpl, inquiryAlertView{
		Type:        msg.Type,
		Name:        msg.Name,
		Email:       msg.Email,
		Phone:       msg.Phone,
		Message:     msg.Message,
		SubmittedAt: at.UTC().Format(time.RFC1123),
	})
	if err != nil {
		return s.finish(ctx, kindInquiryAlert, policy, fmt.Errorf("render: %w", err))
	}
	err = s.sender.Send(ctx, &mailer.Message{
		To:      s.inquiryTo,
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("New %s inquiry from %s", msg.Type, msg.Name),
		HTML:    body,
	})
	return s.finish(ctx, kindInquiryAlert, policy, err, "from", msg.Email)
}

// finish records the outcome and applies policy.
func (s *Service) finish(ctx context.Context, kind string, policy FailurePolicy, err error, kv ...interface{}) error {
	lg := logctx.FromCtx(ctx, s.log)
	if err == nil {
		metrics.Inc(metrics.NotificationsSent, kind, "sent")
		lg.Infow("notification_sent", append([]interface{}{"kind", kind}, kv...)...)
		return nil
	}
	metrics.Inc(metrics.NotificationsSent, kind, "failed")
	lg.Errorw("notification_failed", append([]interface{}{"kind", kind, "policy", policy.String(), "err", err}, kv...)...)
	if policy == FailureSwallow {
		return nil
	}
	return fmt.Errorf("send %s: %w", kind, err)
}

var Module = fx.Options(
	fx.Provide(fx.Annotate(NewService, fx.As(new(Notifier)))),
)
