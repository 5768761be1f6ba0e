package repository

import (
	"context"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
)

// DashboardRepository defines the read-only dashboard aggregates.
type DashboardRepository interface {
	Overview(ctx context.Context) (*entity.DashboardOverview, error)
	TechnologyUsage(ctx context.Context) ([]entity.TechnologyUsage, error)
	ProjectStatusDistribution(ctx context.Context) ([]entity.ProjectStatusCount, error)
	RecentProjects(ctx context.Context) ([]entity.RecentProject, error)
	TeamSummary(ctx context.Context) ([]entity.TeamSummary, error)
	TechnologyByCategory(ctx context.Context) ([]entity.CategoryCount, error)
}
