package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	require.Equal(t, "blog_posts", BlogPost{}.TableName())
	require.Equal(t, "inquiries", Inquiry{}.TableName())
	require.Equal(t, "payment_webhook_log", PaymentWebhookLog{}.TableName())
}
