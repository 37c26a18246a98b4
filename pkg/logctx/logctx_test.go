package logctx

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromCtx_PrefersAttachedLogger(t *testing.T) {
	base := zap.NewNop().Sugar()
	attached := zap.NewNop().Sugar().With("k", "v")

	ctx := WithLogger(context.Background(), attached)
	require.Same(t, attached, FromCtx(ctx, base))
}

func TestFromCtx_FallsBackToBase(t *testing.T) {
	base := zap.NewNop().Sugar()
	require.Same(t, base, FromCtx(context.Background(), base))
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-1")
	require.Equal(t, "trace-1", TraceID(ctx))
	require.Equal(t, "", TraceID(context.Background()))
}

func TestFromGin_UsesContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	base := zap.NewNop().Sugar()
	reqLogger := zap.NewNop().Sugar().With("trace_id", "abc")
	c.Set(GinLoggerKey, reqLogger)

	require.Same(t, reqLogger, FromGin(c, base))
	require.Same(t, base, FromGin(nil, base))
}
