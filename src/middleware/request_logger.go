package middleware

import (
	"strconv"
	"time"

	"Bizonii-Backend/src/logger"
	"Bizonii-Backend/src/metrics"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request and counts it.
func RequestLogger(m *metrics.Metrics) fiber.Handler {
	log := logger.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.RecordHTTPRequest(c.Method(), strconv.Itoa(status))

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error().Err(err)
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("request")
		return err
	}
}
