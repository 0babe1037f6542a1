// Package echomw validates echo request bodies against a schema.
package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	share "github.com/emlinh-ai/emlinh-ai-share"
	"github.com/emlinh-ai/emlinh-ai-share/middleware"
)

// ValidateJSON parses the request body via schema s, stores Decoded[T] in
// the request context on success, or responds 400 with the issues.
func ValidateJSON[T any](s share.Schema[T], opts ...middleware.Option) echo.MiddlewareFunc {
	cfg := middleware.NewConfig(opts...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			dm, err := middleware.Decode(req.Context(), cfg, s, req.Header.Get(echo.HeaderContentType), req.Body, req.Method, req.URL.Path)
			if err != nil {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			c.SetRequest(req.WithContext(middleware.ContextWithDecoded(req.Context(), dm)))
			return next(c)
		}
	}
}

// GetDecoded fetches Decoded[T] from echo.Context.
func GetDecoded[T any](c echo.Context) (share.Decoded[T], bool) {
	return middleware.DecodedFromContext[T](c.Request().Context())
}
