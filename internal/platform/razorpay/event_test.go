package razorpay

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEvent_PaymentCaptured(t *testing.T) {
	body := []byte(`{
		"entity":"event",
		"event":"payment.captured",
		"payload":{"payment":{"entity":{
			"id":"pay_123","amount":299900,"currency":"INR",
			"email":"a@b.com","contact":"+919000000000",
			"notes":{"customer_name":"Asha","label":"DevOps Community","promo_applied":"KUBEDEAL","order_no":42}
		}}}
	}`)
	ev, err := ParseEvent(body)
	require.NoError(t, err)

	pc, ok := ev.(*PaymentCapturedEvent)
	require.True(t, ok)
	require.Equal(t, "pay_123", pc.PaymentID)
	require.EqualValues(t, 299900, pc.AmountMinor)
	require.Equal(t, "INR", pc.Currency)
	require.Equal(t, "a@b.com", pc.Email)
	require.Equal(t, "Asha", pc.CustomerName())
	require.Equal(t, "42", pc.Notes["order_no"])
	require.Equal(t, EventPaymentCaptured, ev.Name())
}

func TestParseEvent_EmptyNotesArray(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","amount":100,"currency":"INR","email":"x@y.z","notes":[]}}}}`))
	require.NoError(t, err)
	pc := ev.(*PaymentCapturedEvent)
	require.NotNil(t, pc.Notes)
	require.Empty(t, pc.Notes)
	require.Equal(t, "", pc.CustomerName())
}

func TestParseEvent_Other(t *testing.T) {
	cases := map[string]string{
		"payment.failed":          `{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_9"}}}}`,
		"order.paid":              `{"event":"order.paid","payload":{}}`,
		"captured, no entity":     `{"event":"payment.captured","payload":{}}`,
		"captured, no payment id": `{"event":"payment.captured","payload":{"payment":{"entity":{"amount":100}}}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			ev, err := ParseEvent([]byte(body))
			require.NoError(t, err)
			_, ok := ev.(*OtherEvent)
			require.True(t, ok)
		})
	}
}

func TestParseEvent_Malformed(t *testing.T) {
	_, err := ParseEvent([]byte(`{"event":`))
	require.Error(t, err)
}

func TestNotes_UnmarshalRejectsScalars(t *testing.T) {
	var n Notes
	require.Error(t, n.UnmarshalJSON([]byte(`"text"`)))
	require.NoError(t, n.UnmarshalJSON([]byte(`null`)))
	require.Empty(t, n)
}
