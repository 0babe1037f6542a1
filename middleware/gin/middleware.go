// Package ginmw validates gin request bodies against a schema.
package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/middleware"
)

// ValidateJSON parses the request body via schema s, stores Decoded[T] in
// the request context, and on validation failure aborts with 400 and the
// issues.
func ValidateJSON[T any](s share.Schema[T], opts ...middleware.Option) gin.HandlerFunc {
	cfg := middleware.NewConfig(opts...)
	return func(c *gin.Context) {
		req := c.Request
		dm, err := middleware.Decode(req.Context(), cfg, s, c.ContentType(), req.Body, req.Method, req.URL.Path)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			return
		}
		c.Request = req.WithContext(middleware.ContextWithDecoded(req.Context(), dm))
		c.Next()
	}
}

// GetDecoded fetches Decoded[T] from gin.Context.
func GetDecoded[T any](c *gin.Context) (share.Decoded[T], bool) {
	return middleware.DecodedFromContext[T](c.Request.Context())
}
