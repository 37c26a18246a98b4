package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devopscommunity/storefront/internal/app/service/blog"
)

// @Summary      List blog posts
// @Description  Published posts, newest first, without content.
// @Tags         Blog
// @Produce      json
// @Param        category   query     string  false  "Category filter; \"all\" or empty for every category"
// @Param        page       query     int     false  "Page, starting at 1"
// @Param        page_size  query     int     false  "Page size (max 50)"
// @Success      200        {object}  blog.ListResponse
// @Failure      400        {object}  handlers.RespError
// @Router       /api/blog [get]
func ApiListBlogPosts(svc *blog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req blog.ListRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			writeError(c, log, errInvalidBody)
			return
		}
		res, err := svc.List(c.Request.Context(), &req)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary      Get blog post
// @Tags         Blog
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  models.BlogPost
// @Failure      404   {object}  handlers.RespError
// @Router       /api/blog/{slug} [get]
func ApiGetBlogPost(svc *blog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}
