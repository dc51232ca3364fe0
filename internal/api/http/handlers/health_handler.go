package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const readyTimeout = 2 * time.Second

// Pinger is a dependency that can report its availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name   string
	pinger Pinger
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	deps        []dependency
}

// NewHealthHandler returns a new handler instance. Nil dependencies are skipped.
func NewHealthHandler(serviceName, version string, postgres, redis Pinger) *HealthHandler {
	h := &HealthHandler{serviceName: serviceName, version: version}
	if postgres != nil {
		h.deps = append(h.deps, dependency{name: "postgres", pinger: postgres})
	}
	if redis != nil {
		h.deps = append(h.deps, dependency{name: "redis", pinger: redis})
	}
	return h
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
	defer cancel()

	results := make([]error, len(h.deps))
	var eg errgroup.Group
	for i, dep := range h.deps {
		i, dep := i, dep
		eg.Go(func() error {
			results[i] = dep.pinger.Ping(ctx)
			return nil
		})
	}
	_ = eg.Wait()

	depStatus := fiber.Map{}
	ready := true
	for i, dep := range h.deps {
		if err := results[i]; err != nil {
			depStatus[dep.name] = err.Error()
			ready = false
			continue
		}
		depStatus[dep.name] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
