package handler

import (
	"context"
	"time"

	"examcraft/internal/domain"
	"examcraft/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	store Pinger
	cache Pinger
}

// NewHealthHandler creates the health endpoints. cache may be nil.
func NewHealthHandler(store Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{store: store, cache: cache}
}

// Live godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health/live [get]
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Description Fails with STORE_UNAVAILABLE while the database is unreachable. The cache is optional and only reported.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} middleware.ErrorResponse
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return domain.NewStoreUnavailableError(err)
	}
	status := fiber.Map{"status": "ready", "store": "ok"}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache ping failed", zap.Error(err))
			status["cache"] = "unavailable"
		} else {
			status["cache"] = "ok"
		}
	}
	return c.JSON(status)
}
