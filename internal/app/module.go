package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/devopscommunity/storefront/internal/app/api/server"
	"github.com/devopscommunity/storefront/internal/app/service/blog"
	"github.com/devopscommunity/storefront/internal/app/service/inquiry"
	"github.com/devopscommunity/storefront/internal/app/service/notifier"
	"github.com/devopscommunity/storefront/internal/app/service/order"
	"github.com/devopscommunity/storefront/internal/app/service/pricing"
	"github.com/devopscommunity/storefront/internal/app/service/webhook"
	"github.com/devopscommunity/storefront/internal/app/service/webhooklog"
	"github.com/devopscommunity/storefront/internal/platform/db"
	"github.com/devopscommunity/storefront/internal/platform/dedup"
	"github.com/devopscommunity/storefront/internal/platform/mailer"
	"github.com/devopscommunity/storefront/internal/platform/razorpay"
	"github.com/devopscommunity/storefront/pkg/config"
	"github.com/devopscommunity/storefront/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 45 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	razorpay.Module,
	dedup.Module,
	mailer.Module,
	server.Module,
	pricing.Module,
	order.Module,
	notifier.Module,
	webhooklog.Module,
	webhook.Module,
	blog.Module,
	inquiry.Module,
)
