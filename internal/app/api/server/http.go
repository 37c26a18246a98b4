package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/docs"
	"github.com/devopscommunity/storefront/internal/app/api/handlers"
	mw "github.com/devopscommunity/storefront/internal/app/api/middleware"
	"github.com/devopscommunity/storefront/internal/app/service/blog"
	"github.com/devopscommunity/storefront/internal/app/service/inquiry"
	"github.com/devopscommunity/storefront/internal/app/service/order"
	"github.com/devopscommunity/storefront/internal/app/service/pricing"
	"github.com/devopscommunity/storefront/internal/app/service/webhook"
	"github.com/devopscommunity/storefront/internal/app/service/webhooklog"
	cfgpkg "github.com/devopscommunity/storefront/pkg/config"
	metrics "github.com/devopscommunity/storefront/pkg/metrics"
)

func newEngine(cfg *cfgpkg.Config) (*gin.Engine, error) {
	if cfg.Env != cfgpkg.EnvDev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// ClientIP feeds the per-IP rate limiter; forwarded headers only count
	// when they come from a configured proxy.
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid server.trusted_proxies: %w", err)
	}
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	r.Use(mw.CORSMiddleware(cfg.Server))
	return r, nil
}

type routeDeps struct {
	fx.In

	Engine    *gin.Engine
	Log       *zap.SugaredLogger
	Cfg       *cfgpkg.Config
	Pricing   *pricing.Policy
	Issuer    order.Issuer
	Confirmer *order.Confirmer
	Webhook   *webhook.Processor
	Blog      *blog.Service
	Inquiry   *inquiry.Service
}

func registerRoutes(lc fx.Lifecycle, d routeDeps) {
	r, log, cfg := d.Engine, d.Log, d.Cfg

	// Prometheus metrics
	if cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return "unmatched"
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if srv := p.Server(); srv != nil {
					return srv.Shutdown(ctx)
				}
				return nil
			},
		})

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))

	limit := mw.RateLimitMiddleware(mw.NewIPRateLimiter(cfg.RateLimit))
	handlers.RegisterPaymentRoutes(api, d.Pricing, d.Issuer, d.Confirmer, d.Webhook, limit, log)
	handlers.RegisterBlogRoutes(api, d.Blog, log)
	handlers.RegisterInquiryRoutes(api, d.Inquiry, limit, log)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine, audit *webhooklog.Service, sd fx.Shutdowner) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("server error: %v", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			err := srv.Shutdown(shutdownCtx)
			// requests finished above may have queued audit rows; they are
			// written before the database hook closes the pool
			audit.Wait()
			return err
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
