package handler

import (
	"examcraft/internal/middleware"
	"examcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	stats service.StatsService
}

func NewDashboardHandler(stats service.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// GetDashboard godoc
// @Summary Dashboard statistics
// @Description Bank-wide subject and question counts, the caller's paper count and the category breakdown.
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	resp, err := h.stats.Dashboard(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
