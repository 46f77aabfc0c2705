package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/notaria-api/pkg/logger"
)

// HTTPMetrics cuenta las respuestas; *metrics.Metrics lo implementa.
type HTTPMetrics interface {
	IncHTTP(method, status string)
}

// RequestLogger registra método, ruta, status, latencia y usuario de cada request.
func RequestLogger(log *logger.Logger, m HTTPMetrics) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		if m != nil {
			m.IncHTTP(c.Method(), strconv.Itoa(status))
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
