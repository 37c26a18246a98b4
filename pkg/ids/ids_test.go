package ids

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewV7_IsVersion7(t *testing.T) {
	id, err := uuid.Parse(NewV7())
	require.NoError(t, err)
	require.Equal(t, uuid.Version(7), id.Version())
}

func TestReceipt_DerivedFromTimestamp(t *testing.T) {
	at := time.UnixMilli(1735689600123)
	require.Equal(t, "receipt_1735689600123", Receipt(at))
	require.LessOrEqual(t, len(Receipt(at)), 40)
}
