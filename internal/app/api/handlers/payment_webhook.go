package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/apperr"
	"github.com/devopscommunity/storefront/internal/app/service/webhook"
	"github.com/devopscommunity/storefront/pkg/logctx"
	"github.com/devopscommunity/storefront/pkg/signature"
)

const maxWebhookBody = 1 << 20

// @Summary      Razorpay webhook
// @Description  Receives Razorpay webhook deliveries. The body is authenticated with X-Razorpay-Signature before it is parsed. Only payment.captured triggers a confirmation email; other events are acknowledged.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        X-Razorpay-Signature  header    string  true  "hex HMAC-SHA256 of the raw body"
// @Param        payload               body      object  true  "Razorpay event"
// @Success      200                   {object}  handlers.RespMessage
// @Failure      400                   {object}  handlers.RespError
// @Failure      500                   {object}  handlers.RespError
// @Router       /api/webhook/razorpay [post]
func ApiRazorpayWebhook(p *webhook.Processor, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logctx.FromGin(c, log).Infow("webhook_razorpay_received")

		// the signature covers these exact bytes
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
		body, err := c.GetRawData()
		if err != nil {
			writeError(c, log, apperr.Validation("unreadable request body"))
			return
		}

		res, err := p.Process(c.Request.Context(), body, c.GetHeader(signature.HeaderWebhook))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, RespMessage{Message: res.Outcome.Message()})
	}
}
