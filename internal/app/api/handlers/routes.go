package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/service/blog"
	"github.com/devopscommunity/storefront/internal/app/service/inquiry"
	"github.com/devopscommunity/storefront/internal/app/service/order"
	"github.com/devopscommunity/storefront/internal/app/service/pricing"
	"github.com/devopscommunity/storefront/internal/app/service/webhook"
)

// RegisterPaymentRoutes mounts the checkout and webhook endpoints. limit
// guards order creation, the only route that calls the gateway.
func RegisterPaymentRoutes(r gin.IRouter, p *pricing.Policy, issuer order.Issuer, conf *order.Confirmer, wh *webhook.Processor, limit gin.HandlerFunc, log *zap.SugaredLogger) {
	r.GET("/price", ApiGetPrice(p))
	r.POST("/price", ApiPostPrice(p))
	r.POST("/create-order", limit, ApiCreateOrder(issuer, log))
	r.POST("/verify-payment", ApiVerifyPayment(conf, log))
	r.POST("/webhook/razorpay", ApiRazorpayWebhook(wh, log))
}

func RegisterBlogRoutes(r gin.IRouter, svc *blog.Service, log *zap.SugaredLogger) {
	r.GET("/blog", ApiListBlogPosts(svc, log))
	r.GET("/blog/:slug", ApiGetBlogPost(svc, log))
}

func RegisterInquiryRoutes(r gin.IRouter, svc *inquiry.Service, limit gin.HandlerFunc, log *zap.SugaredLogger) {
	r.POST("/inquiries", limit, ApiCreateInquiry(svc, log))
}
