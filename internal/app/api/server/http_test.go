package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	mw "github.com/devopscommunity/storefront/internal/app/api/middleware"
	"github.com/devopscommunity/storefront/internal/app/service/webhooklog"
	"github.com/devopscommunity/storefront/internal/models"
	"github.com/devopscommunity/storefront/internal/platform/db/dbtest"
	cfgpkg "github.com/devopscommunity/storefront/pkg/config"
)

func limitedEngine(t *testing.T, trusted []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &cfgpkg.Config{
		Env:    cfgpkg.EnvDev,
		Server: cfgpkg.ServerConfig{TrustedProxies: trusted},
	}
	r, err := newEngine(cfg)
	require.NoError(t, err)
	limit := mw.RateLimitMiddleware(mw.NewIPRateLimiter(cfgpkg.RateLimitConfig{RPS: 0.001, Burst: 5}))
	r.POST("/api/create-order", limit, func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func postFrom(r *gin.Engine, remote, forwarded string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/create-order", nil)
	req.RemoteAddr = remote
	if forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestNewEngine_ForwardedForCannotDodgeRateLimit(t *testing.T) {
	r := limitedEngine(t, nil)

	allowed := 0
	for i := 0; i < 20; i++ {
		if postFrom(r, "203.0.113.9:4000", fmt.Sprintf("198.51.100.%d", i)) == http.StatusOK {
			allowed++
		}
	}
	require.Equal(t, 5, allowed)
}

func TestNewEngine_TrustedProxyForwardsClientIP(t *testing.T) {
	r := limitedEngine(t, []string{"10.0.0.0/8"})

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, postFrom(r, "10.1.2.3:4000", fmt.Sprintf("198.51.100.%d", i)))
	}
	// an untrusted peer is still limited by its own address
	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		codes = append(codes, postFrom(r, "203.0.113.9:4000", fmt.Sprintf("192.0.2.%d", i)))
	}
	require.Equal(t, http.StatusTooManyRequests, codes[5])
}

func TestNewEngine_RejectsBadTrustedProxy(t *testing.T) {
	_, err := newEngine(&cfgpkg.Config{Env: cfgpkg.EnvDev, Server: cfgpkg.ServerConfig{TrustedProxies: []string{"not-a-cidr"}}})
	require.Error(t, err)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func waitListening(t *testing.T, addr string) {
	t.Helper()
	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunServer_AuditWritesLandBeforeDatabaseCloses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := dbtest.Open(t)
	log := zap.NewNop().Sugar()
	audit := webhooklog.New(gdb, log)

	started := make(chan struct{})
	r := gin.New()
	r.POST("/api/webhook/razorpay", func(c *gin.Context) {
		close(started)
		time.Sleep(100 * time.Millisecond)
		audit.Save(c.Request.Context(), &models.PaymentWebhookLog{Status: models.PaymentWebhookLogStatusProcessed})
		c.Status(http.StatusOK)
	})
	cfg := &cfgpkg.Config{Server: cfgpkg.ServerConfig{Host: "127.0.0.1", Port: freePort(t)}}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	rowsAtClose := int64(-1)
	app := fxtest.New(t,
		fx.Supply(cfg, log, r, audit),
		// registered first like the database module, so it stops last
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{OnStop: func(context.Context) error {
				return gdb.Model(&models.PaymentWebhookLog{}).Count(&rowsAtClose).Error
			}})
		}),
		fx.Invoke(runServer),
	)
	app.RequireStart()
	waitListening(t, addr)

	status := make(chan int, 1)
	go func() {
		resp, err := http.Post("http://"+addr+"/api/webhook/razorpay", "application/json", nil)
		if err != nil {
			status <- 0
			return
		}
		_ = resp.Body.Close()
		status <- resp.StatusCode
	}()
	<-started

	app.RequireStop()
	require.Equal(t, int64(1), rowsAtClose)
	require.Equal(t, http.StatusOK, <-status)
}
