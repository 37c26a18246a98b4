package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/pkg/config"
)

func TestSMTPSender_NotConfigured(t *testing.T) {
	s := NewSMTPSender(&config.Config{}, zap.NewNop().Sugar())
	err := s.Send(context.Background(), &Message{To: "a@b.com", Subject: "x", HTML: "<p>x</p>"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestSMTPSender_BuildMsg(t *testing.T) {
	s := NewSMTPSender(&config.Config{Mail: config.MailConfig{User: "noreply@devopscommunity.in", Password: "p"}}, zap.NewNop().Sugar())

	m, err := s.buildMsg(&Message{To: "a@b.com", ReplyTo: "asha@example.com", Subject: "Payment received", HTML: "<p>Hi</p>"})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "From: <noreply@devopscommunity.in>")
	require.Contains(t, out, "To: <a@b.com>")
	require.Contains(t, out, "Reply-To: <asha@example.com>")
	require.Contains(t, out, "Subject: Payment received")
	require.Contains(t, out, "text/html")

	_, err = s.buildMsg(&Message{To: "not an address"})
	require.Error(t, err)
}
