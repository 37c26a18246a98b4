// Package webhook authenticates and handles Razorpay webhook deliveries.
//
// Each delivery moves through: signature check, event filter, dedup, notify.
// Failures after the signature check are reported as retriable so the
// gateway delivers again; everything else resolves the delivery.
package webhook

import (
	"context"
	"encoding/json"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/apperr"
	"github.com/devopscommunity/storefront/internal/app/service/notifier"
	"github.com/devopscommunity/storefront/internal/app/service/webhooklog"
	"github.com/devopscommunity/storefront/internal/models"
	"github.com/devopscommunity/storefront/internal/platform/dedup"
	"github.com/devopscommunity/storefront/internal/platform/razorpay"
	"github.com/devopscommunity/storefront/pkg/config"
	"github.com/devopscommunity/storefront/pkg/logctx"
	"github.com/devopscommunity/storefront/pkg/metrics"
	"github.com/devopscommunity/storefront/pkg/signature"
)

type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
	// rejected and failed never produce a Result; they are used for metrics
	// and the audit log only.
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// Message is the response text acknowledged to the gateway.
func (o Outcome) Message() string {
	switch o {
	case OutcomeProcessed:
		return "Processed"
	case OutcomeDuplicate:
		return "Already processed"
	default:
		return "Event acknowledged"
	}
}

type Result struct {
	Outcome   Outcome
	Event     string
	PaymentID string
}

var (
	ErrNotConfigured    = apperr.Configuration("webhook secret not configured")
	ErrMissingSignature = apperr.Authentication("missing signature")
	ErrInvalidSignature = apperr.Authentication("invalid signature")
)

type Processor struct {
	secret   string
	store    dedup.Store
	notifier notifier.Notifier
	audit    webhooklog.Recorder
	log      *zap.SugaredLogger
}

func NewProcessor(cfg *config.Config, store dedup.Store, n notifier.Notifier, audit webhooklog.Recorder, log *zap.SugaredLogger) *Processor {
	return &Processor{
		secret:   cfg.Razorpay.WebhookSecret,
		store:    store,
		notifier: n,
		audit:    audit,
		log:      log,
	}
}

// Process handles one delivery. body must be the exact request bytes.
func (p *Processor) Process(ctx context.Context, body []byte, sig string) (*Result, error) {
	lg := logctx.FromCtx(ctx, p.log)

	if sig == "" {
		return nil, p.reject(ctx, ErrMissingSignature)
	}
	if p.secret == "" {
		lg.Errorw("webhook_secret_missing")
		metrics.Inc(metrics.WebhookEvents, string(OutcomeFailed))
		return nil, ErrNotConfigured
	}
	if !signature.Verify(body, sig, p.secret) {
		return nil, p.reject(ctx, ErrInvalidSignature)
	}

	ev, err := razorpay.ParseEvent(body)
	if err != nil {
		lg.Errorw("webhook_parse_failed", "err", err)
		p.record(ctx, body, nil, OutcomeFailed, err)
		return nil, apperr.Internal("malformed webhook payload", err)
	}

	captured, ok := ev.(*razorpay.PaymentCapturedEvent)
	if !ok {
		lg.Infow("webhook_event_ignored", "event", ev.Name())
		return p.done(ctx, body, ev, OutcomeIgnored), nil
	}
	lg = lg.With("payment_id", captured.PaymentID)

	seen, err := p.store.Seen(ctx, captured.PaymentID)
	if err != nil {
		lg.Errorw("webhook_dedup_lookup_failed", "err", err)
		p.record(ctx, body, ev, OutcomeFailed, err)
		return nil, apperr.Internal("dedup lookup failed", err)
	}
	if seen {
		lg.Infow("webhook_duplicate")
		return p.done(ctx, body, ev, OutcomeDuplicate), nil
	}
	already, err := p.store.MarkSeen(ctx, captured.PaymentID)
	if err != nil {
		lg.Errorw("webhook_dedup_mark_failed", "err", err)
		p.record(ctx, body, ev, OutcomeFailed, err)
		return nil, apperr.Internal("dedup mark failed", err)
	}
	if already {
		// a concurrent delivery of the same payment claimed it first
		lg.Infow("webhook_duplicate", "concurrent", true)
		return p.done(ctx, body, ev, OutcomeDuplicate), nil
	}

	err = p.notifier.SendPaymentConfirmation(ctx, notifier.PaymentConfirmation{
		Email:       captured.Email,
		AmountMinor: captured.AmountMinor,
		Currency:    captured.Currency,
		PaymentID:   captured.PaymentID,
		Name:        captured.CustomerName(),
		Contact:     captured.Contact,
	}, notifier.FailurePropagate)
	if err != nil {
		if ferr := p.store.Forget(ctx, captured.PaymentID); ferr != nil {
			lg.Warnw("webhook_dedup_forget_failed", "err", ferr)
		}
		lg.Errorw("webhook_notify_failed", "err", err)
		p.record(ctx, body, ev, OutcomeFailed, err)
		return nil, apperr.Internal("failed to process webhook", err)
	}

	lg.Infow("webhook_processed", "amount", captured.AmountMinor)
	return p.done(ctx, body, ev, OutcomeProcessed), nil
}

func (p *Processor) reject(ctx context.Context, err *apperr.Error) error {
	logctx.FromCtx(ctx, p.log).Warnw("webhook_rejected", "reason", err.Message)
	metrics.Inc(metrics.WebhookEvents, string(OutcomeRejected))
	// the unverified body is not stored
	p.audit.Save(ctx, &models.PaymentWebhookLog{
		Status: models.PaymentWebhookLogStatusRejected,
		Result: webhooklog.ResultJSON(map[string]string{"error": err.Message}),
	})
	return err
}

func (p *Processor) done(ctx context.Context, body []byte, ev razorpay.Event, o Outcome) *Result {
	p.record(ctx, body, ev, o, nil)
	res := &Result{Outcome: o, Event: ev.Name()}
	if c, ok := ev.(*razorpay.PaymentCapturedEvent); ok {
		res.PaymentID = c.PaymentID
	}
	return res
}

// record counts the outcome and writes the audit row.
func (p *Processor) record(ctx context.Context, body []byte, ev razorpay.Event, o Outcome, cause error) {
	metrics.Inc(metrics.WebhookEvents, string(o))
	entry := &models.PaymentWebhookLog{Status: models.PaymentWebhookLogStatus(o)}
	if json.Valid(body) {
		entry.Data = body
	}
	if ev != nil {
		entry.Event = ev.Name()
		if c, ok := ev.(*razorpay.PaymentCapturedEvent); ok {
			entry.PaymentID = c.PaymentID
		}
	}
	if cause != nil {
		entry.Result = webhooklog.ResultJSON(map[string]string{"error": cause.Error()})
	} else {
		entry.Result = webhooklog.ResultJSON(map[string]string{"message": o.Message()})
	}
	p.audit.Save(ctx, entry)
}

var Module = fx.Options(
	fx.Provide(NewProcessor),
)
