// Package mailer delivers HTML email through the configured SMTP relay.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/pkg/config"
	"github.com/devopscommunity/storefront/pkg/logctx"
)

var ErrNotConfigured = errors.New("mail credentials not configured")

type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPSender authenticates with the configured user; that address is also
// the envelope sender.
type SMTPSender struct {
	cfg config.MailConfig
	log *zap.SugaredLogger
}

func NewSMTPSender(cfg *config.Config, log *zap.SugaredLogger) *SMTPSender {
	if cfg.Mail.User == "" || cfg.Mail.Password == "" {
		log.Warnw("mail credentials missing; outbound email will fail")
	}
	return &SMTPSender{cfg: cfg.Mail, log: log}
}

func (s *SMTPSender) buildMsg(msg *Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.cfg.User); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to %q: %w", msg.ReplyTo, err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if s.cfg.User == "" || s.cfg.Password == "" {
		return ErrNotConfigured
	}
	m, err := s.buildMsg(msg)
	if err != nil {
		return err
	}
	c, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("mail_sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

var Module = fx.Options(
	fx.Provide(
		NewSMTPSender,
		func(s *SMTPSender) Sender { return s },
	),
)
