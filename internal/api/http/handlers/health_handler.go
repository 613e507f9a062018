package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/opsdesk/helpdesk-service/internal/persistence"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness probes. Liveness only says
// the process is up; readiness additionally pings every backing dependency.
type HealthHandler struct {
	serviceName string
	version     string
	deps        []dependency
}

type dependency struct {
	name string
	ping func(context.Context) error
}

// NewHealthHandler wires the postgres and redis pings into the probe.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		deps: []dependency{
			{name: "postgres", ping: postgres.Ping},
			{name: "redis", ping: redis.Ping},
		},
	}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready answers 200 only when every dependency responds within the probe
// timeout; otherwise 503 with the per-dependency failures.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	statuses := fiber.Map{}
	ready := true
	for _, dep := range h.deps {
		if err := dep.ping(ctx); err != nil {
			statuses[dep.name] = err.Error()
			ready = false
			continue
		}
		statuses[dep.name] = "ok"
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": statuses,
			},
		})
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": statuses,
	})
}
