package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/service/order"
)

// @Summary      Create checkout order
// @Description  Creates a Razorpay order priced on the server from the promo code and returns what the hosted checkout needs.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request  body      order.CreateOrderRequest  true  "Customer details and optional promo code"
// @Success      200      {object}  order.CreateOrderResult
// @Failure      400      {object}  handlers.RespError
// @Failure      429      {object}  handlers.RespError
// @Failure      500      {object}  handlers.RespError
// @Failure      502      {object}  handlers.RespError
// @Router       /api/create-order [post]
func ApiCreateOrder(issuer order.Issuer, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, errInvalidBody)
			return
		}
		res, err := issuer.CreateOrder(c.Request.Context(), &req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary      Verify checkout payment
// @Description  Verifies the signature returned by the hosted checkout over "order_id|payment_id".
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request  body      order.ConfirmRequest  true  "Checkout response"
// @Success      200      {object}  order.ConfirmResult
// @Failure      400      {object}  handlers.RespError
// @Failure      500      {object}  handlers.RespError
// @Router       /api/verify-payment [post]
func ApiVerifyPayment(conf *order.Confirmer, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.ConfirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, errInvalidBody)
			return
		}
		res, err := conf.Confirm(c.Request.Context(), &req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
