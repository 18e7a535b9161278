package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// RequestLogger registra método, ruta, estado y latencia de cada petición, y el sujeto del token si lo hay.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		// En rutas de escritura con token queda registrado quién hizo el cambio.
		if sub := GetSubject(c); sub != "" {
			ev = ev.Str("subject", sub).Str("role", GetRole(c))
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http")
		return err
	}
}
