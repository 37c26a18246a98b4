package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devopscommunity/storefront/internal/app/service/pricing"
)

type priceRequest struct {
	PromoCode string `json:"promoCode" form:"promoCode"`
}

// @Summary      Get course price
// @Description  Returns the server-side price for an optional promo code. Unknown codes fall back to the original price.
// @Tags         Payment
// @Produce      json
// @Param        promoCode  query     string  false  "Promo code (case-insensitive)"
// @Success      200        {object}  pricing.Quote
// @Router       /api/price [get]
func ApiGetPrice(p *pricing.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, p.Compute(c.Query("promoCode")))
	}
}

// @Summary      Compute course price
// @Description  Same as GET /api/price with the promo code in a JSON body. An empty or unreadable body quotes the original price.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request  body      handlers.priceRequest  false  "Promo code"
// @Success      200      {object}  pricing.Quote
// @Router       /api/price [post]
func ApiPostPrice(p *pricing.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req priceRequest
		// pricing never fails; a bad body just means no promo
		_ = c.ShouldBindJSON(&req)
		c.JSON(http.StatusOK, p.Compute(req.PromoCode))
	}
}
