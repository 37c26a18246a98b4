package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/service/inquiry"
)

// @Summary      Submit inquiry
// @Description  Stores a contact form submission and alerts staff by email. Email failures do not fail the request.
// @Tags         Inquiry
// @Accept       json
// @Produce      json
// @Param        request  body      inquiry.CreateRequest  true  "Inquiry"
// @Success      201      {object}  handlers.RespInquiryCreated
// @Failure      400      {object}  handlers.RespError
// @Failure      429      {object}  handlers.RespError
// @Router       /api/inquiries [post]
func ApiCreateInquiry(svc *inquiry.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inquiry.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, log, errInvalidBody)
			return
		}
		inq, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, RespInquiryCreated{ID: inq.ID, Message: "Inquiry received"})
	}
}
