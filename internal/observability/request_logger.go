package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// UnmatchedRoute is the path label of requests no route handled.
const UnmatchedRoute = "unmatched"

const unmatchedLocal = "observability.unmatched"

// MarkUnmatched flags the request as not handled by any registered route.
func MarkUnmatched(c *fiber.Ctx) {
	c.Locals(unmatchedLocal, true)
}

// RouteLabel returns the registered route pattern of the request, never the raw path.
func RouteLabel(c *fiber.Ctx) string {
	if unmatched, _ := c.Locals(unmatchedLocal).(bool); unmatched {
		return UnmatchedRoute
	}
	route := c.Route()
	if route == nil || len(route.Handlers) == 0 || route.Path == "" {
		return UnmatchedRoute
	}
	return route.Path
}

// RequestLogger logs one line per request and records request metrics.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		duration := time.Since(start)
		metrics.RecordRequest(RouteLabel(c), c.Method(), status, duration)

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", duration),
		)
		return err
	}
}
