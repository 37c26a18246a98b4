package ids

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewV7 returns a time-ordered UUID string for primary keys.
func NewV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Receipt builds the per-checkout receipt reference sent to the gateway.
// Razorpay caps receipts at 40 characters.
func Receipt(now time.Time) string {
	return fmt.Sprintf("receipt_%d", now.UnixMilli())
}
