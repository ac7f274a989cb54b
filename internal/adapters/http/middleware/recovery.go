package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/http/dto"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/logging"
)

// Recovery turns a panic into a 500 response and logs it with the stack.
// It must be the first middleware so it covers the rest of the chain.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()
			logging.FromContextOr(ctx, logger).ErrorContext(ctx, "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("trace_id", dto.GetTraceID(c)),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			dto.AbortWithCode(c, dto.ErrorCodeInternal, dto.InternalErrorMessage)
		}()

		c.Next()
	}
}
