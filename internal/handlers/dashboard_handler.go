package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"kedai/internal/apperr"
	"kedai/internal/services"
)

// DashboardHandler handles HTTP requests for dashboard statistics.
type DashboardHandler struct {
	service *services.DashboardService
	log     *logrus.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.DashboardService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

// RegisterRoutes registers the dashboard routes with the Fiber app.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Get("/", h.HandleGetSummary)
	dashboardRoutes.Get("/orders", h.HandleGetOrderStats)
	dashboardRoutes.Get("/products", h.HandleGetProductPerformance)
}

// HandleGetSummary returns the point-in-time dashboard snapshot.
func (h *DashboardHandler) HandleGetSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary()
	if err != nil {
		h.log.WithError(err).Error("failed to compute dashboard summary")
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// HandleGetOrderStats returns daily order stats, optionally bounded by
// startDate/endDate query parameters (YYYY-MM-DD).
func (h *DashboardHandler) HandleGetOrderStats(c *fiber.Ctx) error {
	stats, err := h.service.GetOrderStats(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		if !apperr.IsValidation(err) {
			h.log.WithError(err).Error("failed to compute order stats")
		}
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// HandleGetProductPerformance returns per-product sales rollups,
// truncated to the limit query parameter (default 10).
func (h *DashboardHandler) HandleGetProductPerformance(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	perf, err := h.service.GetProductPerformance(limit)
	if err != nil {
		h.log.WithError(err).Error("failed to compute product performance")
		return respondError(c, err)
	}
	return c.JSON(perf)
}
