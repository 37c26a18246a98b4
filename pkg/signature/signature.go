// Package signature implements the HMAC-SHA256 scheme Razorpay uses for both
// checkout confirmations and webhook deliveries.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HeaderWebhook carries the webhook body signature.
const HeaderWebhook = "X-Razorpay-Signature"

// Sign returns the lowercase hex HMAC-SHA256 of payload keyed by secret.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is the lowercase hex HMAC-SHA256 of the
// exact payload bytes, as Razorpay sends it. Comparison is constant time.
// Any other input, uppercase hex included, yields false; Verify never panics.
func Verify(payload []byte, signature, secret string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if signature == "" || secret == "" {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(Sign(payload, secret)))
}

// ConfirmationPayload builds the "{order_id}|{payment_id}" message signed by
// the hosted checkout.
func ConfirmationPayload(orderID, paymentID string) []byte {
	return []byte(orderID + "|" + paymentID)
}
