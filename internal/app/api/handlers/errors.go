package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/apperr"
	"github.com/devopscommunity/storefront/pkg/logctx"
)

var errInvalidBody = apperr.Validation("invalid request body")

// writeError maps err to its status and a {"error": ...} body. Only gateway
// failures carry the upstream detail; other causes stay in the logs.
func writeError(c *gin.Context, base *zap.SugaredLogger, err error) {
	e := apperr.As(err)
	status := e.Kind.HTTPStatus()
	lg := logctx.FromGin(c, base)
	if status >= 500 {
		lg.Errorw("request_failed", "kind", e.Kind.String(), "status", status, "err", err)
	} else {
		lg.Warnw("request_rejected", "kind", e.Kind.String(), "status", status, "err", err)
	}
	body := RespError{Error: e.Message}
	if e.Kind == apperr.KindGateway {
		body.Detail = e.Detail
	}
	c.AbortWithStatusJSON(status, body)
}
