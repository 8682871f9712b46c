package analytics

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves read statistics.
type Handler struct {
	store *Store
}

// NewHandler creates a new analytics handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// StatsResponse is the JSON response for the stats endpoint.
type StatsResponse struct {
	PeriodDays int        `json:"period_days"`
	Posts      []PostStat `json:"posts"`
}

// GetStats returns per-post read depth as JSON.
func (h *Handler) GetStats(c echo.Context) error {
	days := parsePeriod(c.QueryParam("period"))
	from := time.Now().UTC().AddDate(0, 0, -days)

	stats, err := h.store.PostStats(from)
	if err != nil {
		c.Logger().Errorf("Failed to get read stats: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, StatsResponse{PeriodDays: days, Posts: stats})
}

// parsePeriod maps the period query parameter to a number of days.
func parsePeriod(period string) int {
	switch period {
	case "today":
		return 1
	case "month":
		return 30
	case "year":
		return 365
	default:
		return 7
	}
}

// RegisterRoutes mounts the analytics endpoints.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/reads", h.GetStats)
}
