package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKind_HTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:     http.StatusBadRequest,
		KindAuthentication: http.StatusBadRequest,
		KindGateway:        http.StatusBadGateway,
		KindConfiguration:  http.StatusInternalServerError,
		KindNotFound:       http.StatusNotFound,
		KindInternal:       http.StatusInternalServerError,
	}
	for k, want := range cases {
		require.Equal(t, want, k.HTTPStatus(), k.String())
	}
}

func TestGateway_CarriesCauseAsDetail(t *testing.T) {
	cause := errors.New("BAD_REQUEST_ERROR: The amount must be atleast INR 1.00")
	err := Gateway("failed to create order", cause)
	require.Equal(t, cause.Error(), err.Detail)
	require.ErrorIs(t, err, cause)
	require.Equal(t, KindGateway, KindOf(fmt.Errorf("create: %w", err)))
}

func TestIs_MatchesSentinelThroughWrapping(t *testing.T) {
	sentinel := Authentication("invalid signature")
	err := fmt.Errorf("webhook: %w", Authentication("invalid signature"))
	require.ErrorIs(t, err, sentinel)
	require.NotErrorIs(t, err, Authentication("missing signature"))
}

func TestAs_UnclassifiedBecomesInternal(t *testing.T) {
	require.Nil(t, As(nil))

	e := As(errors.New("boom"))
	require.Equal(t, KindInternal, e.Kind)
	require.Equal(t, "internal server error", e.Message)

	v := Validation("email is required")
	require.Same(t, v, As(fmt.Errorf("wrap: %w", v)))
}
