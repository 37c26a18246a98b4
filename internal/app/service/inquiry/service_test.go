package inquiry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/apperr"
	"github.com/devopscommunity/storefront/internal/app/service/notifier"
	"github.com/devopscommunity/storefront/internal/models"
	"github.com/devopscommunity/storefront/internal/platform/db/dbtest"
)

type fakeNotifier struct {
	alerts []notifier.InquiryAlert
	policy notifier.FailurePolicy
	err    error
}

func (f *fakeNotifier) SendPaymentConfirmation(context.Context, notifier.PaymentConfirmation, notifier.FailurePolicy) error {
	return nil
}

func (f *fakeNotifier) SendInquiryAlert(_ context.Context, a notifier.InquiryAlert, p notifier.FailurePolicy) error {
	f.alerts = append(f.alerts, a)
	f.policy = p
	if p == notifier.FailureSwallow {
		return nil
	}
	return f.err
}

func TestCreate_SavesAndAlerts(t *testing.T) {
	gdb := dbtest.Open(t)
	n := &fakeNotifier{err: errors.New("smtp down")}
	s := New(gdb, n, zap.NewNop().Sugar())

	inq, err := s.Create(context.Background(), &CreateRequest{
		Name: " Ravi ", Email: "ravi@example.com", Phone: "99999", Type: "Corporate", Message: "Team training",
	})
	require.NoError(t, err)
	require.NotEmpty(t, inq.ID)
	require.Equal(t, models.InquiryTypeCorporate, inq.Type)

	var stored models.Inquiry
	require.NoError(t, gdb.First(&stored, "id = ?", inq.ID).Error)
	require.Equal(t, "Ravi", stored.Name)
	require.Equal(t, "Team training", stored.Message)

	require.Len(t, n.alerts, 1)
	require.Equal(t, notifier.FailureSwallow, n.policy)
	require.Equal(t, "ravi@example.com", n.alerts[0].Email)
}

func TestCreate_DefaultsType(t *testing.T) {
	s := New(dbtest.Open(t), &fakeNotifier{}, zap.NewNop().Sugar())
	inq, err := s.Create(context.Background(), &CreateRequest{Name: "A", Email: "a@b.com", Message: "hi"})
	require.NoError(t, err)
	require.Equal(t, models.InquiryTypeGeneral, inq.Type)
}

func TestCreate_Validation(t *testing.T) {
	s := New(dbtest.Open(t), &fakeNotifier{}, zap.NewNop().Sugar())
	cases := map[string]*CreateRequest{
		"nil":          nil,
		"no name":      {Email: "a@b.com", Message: "m"},
		"no email":     {Name: "A", Message: "m"},
		"bad email":    {Name: "A", Email: "ab", Message: "m"},
		"no message":   {Name: "A", Email: "a@b.com", Message: "  "},
		"long message": {Name: "A", Email: "a@b.com", Message: strings.Repeat("x", maxMessageLen+1)},
		"bad type":     {Name: "A", Email: "a@b.com", Message: "m", Type: "spam"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(context.Background(), req)
			require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}
