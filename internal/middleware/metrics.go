package middleware

import (
	"errors"
	"strconv"
	"sync"

	"inkwell/internal/observability"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the process-wide HTTP metrics middleware. Its collectors live in the
// default Prometheus registry, so it is created once and shared by every app instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// SurfaceMetrics counts requests per API surface, method and status class.
func SurfaceMetrics(surface string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		observability.SurfaceRequests.WithLabelValues(surface, c.Method(), strconv.Itoa(status/100)+"xx").Inc()
		return err
	}
}
