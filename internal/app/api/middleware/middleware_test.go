package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/pkg/config"
	"github.com/devopscommunity/storefront/pkg/logctx"
)

func TestTraceAndRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware(), RequestLoggerMiddleware(zap.NewNop().Sugar()), AccessLogMiddleware(zap.NewNop().Sugar()))

	var gotTrace string
	var hasLogger bool
	r.GET("/x", func(c *gin.Context) {
		gotTrace = logctx.TraceID(c.Request.Context())
		_, hasLogger = c.Get(logctx.GinLoggerKey)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", gotTrace)
	require.True(t, hasLogger)
	require.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NotEmpty(t, w.Header().Get(HeaderRequestID))
	require.NotEqual(t, "abc-123", gotTrace)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewIPRateLimiter(config.RateLimitConfig{RPS: 0.001, Burst: 2})
	r := gin.New()
	r.POST("/limited", RateLimitMiddleware(l), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	require.Equal(t, []int{200, 200, 429}, codes)

	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestIPRateLimiter_DropsIdleVisitors(t *testing.T) {
	l := NewIPRateLimiter(config.RateLimitConfig{})
	clock := time.Unix(1700000000, 0)
	l.now = func() time.Time { return clock }
	require.True(t, l.Allow("a"))
	require.Len(t, l.visitors, 1)

	clock = clock.Add(time.Hour)
	require.True(t, l.Allow("b"))
	require.Len(t, l.visitors, 1)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(config.ServerConfig{AllowedOrigins: []string{"https://devopscommunity.in"}}))
	r.POST("/api/price", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/price", nil)
	req.Header.Set("Origin", "https://devopscommunity.in")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://devopscommunity.in", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/api/price", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}
