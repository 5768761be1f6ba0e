package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
)

// DashboardHandler serves the aggregated dashboard statistics.
type DashboardHandler struct {
	logger    *zap.Logger
	dashboard repository.DashboardRepository
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(logger *zap.Logger, dashboard repository.DashboardRepository) *DashboardHandler {
	return &DashboardHandler{logger: logger, dashboard: dashboard}
}

// GetStats returns all six dashboard aggregates in one response. Any
// failing aggregate fails the whole request.
func (h *DashboardHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.dashboard.Overview(ctx)
	if err != nil {
		return apperrors.Wrap(err, "dashboard overview")
	}
	techUsage, err := h.dashboard.TechnologyUsage(ctx)
	if err != nil {
		return apperrors.Wrap(err, "dashboard technology usage")
	}
	statusDist, err := h.dashboard.ProjectStatusDistribution(ctx)
	if err != nil {
		return apperrors.Wrap(err, "dashboard status distribution")
	}
	recent, err := h.dashboard.RecentProjects(ctx)
	if err != nil {
		return apperrors.Wrap(err, "dashboard recent projects")
	}
	teams, err := h.dashboard.TeamSummary(ctx)
	if err != nil {
		return apperrors.Wrap(err, "dashboard team summary")
	}
	byCategory, err := h.dashboard.TechnologyByCategory(ctx)
	if err != nil {
		return apperrors.Wrap(err, "dashboard technology by category")
	}

	stats := entity.DashboardStats{
		TechnologyUsage:           techUsage,
		ProjectStatusDistribution: statusDist,
		RecentProjects:            recent,
		TeamSummary:               teams,
		TechnologyByCategory:      byCategory,
	}
	if overview != nil {
		stats.Overview = *overview
	}
	return c.JSON(nethttp.StatusOK, stats)
}
