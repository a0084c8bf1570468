package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"library-service/internal/application/services"
)

type StatsHandler struct {
	statsService *services.StatisticsService
}

func NewStatsHandler(statsService *services.StatisticsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// General handles GET /general_stats/. No auth required.
func (h *StatsHandler) General(c echo.Context) error {
	stats, err := h.statsService.General(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":        "Below are the most recent statistics from our database",
		"user_stats":     stats.UserStats,
		"resource_stats": stats.ResourceStats,
		"tag_stats":      stats.TagStats,
	})
}
