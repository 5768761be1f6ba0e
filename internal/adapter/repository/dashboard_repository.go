package repository

import (
	"context"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	"go.uber.org/zap"
)

type dashboardRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewDashboardRepository creates the dashboard repository.
func NewDashboardRepository(db *database.DB, logger *zap.Logger) repository.DashboardRepository {
	return &dashboardRepository{db: db, logger: logger}
}

func (r *dashboardRepository) Overview(ctx context.Context) (*entity.DashboardOverview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM projects) AS total_projects,
			(SELECT COUNT(*) FROM technologies) AS total_technologies,
			(SELECT COUNT(*) FROM teams) AS total_teams,
			(SELECT COUNT(*) FROM users) AS total_users`
	return database.FetchOne[entity.DashboardOverview](ctx, r.db, query)
}

func (r *dashboardRepository) TechnologyUsage(ctx context.Context) ([]entity.TechnologyUsage, error) {
	query := `
		SELECT
			t.name,
			COUNT(DISTINCT pt.project_id) AS project_count,
			tc.name AS category_name
		FROM technologies t
		LEFT JOIN project_technologies pt ON t.id = pt.technology_id
		LEFT JOIN technology_categories tc ON t.category_id = tc.id
		GROUP BY t.id, t.name, tc.name
		ORDER BY project_count DESC
		LIMIT 10`
	return database.FetchAll[entity.TechnologyUsage](ctx, r.db, query)
}

func (r *dashboardRepository) ProjectStatusDistribution(ctx context.Context) ([]entity.ProjectStatusCount, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM projects
		GROUP BY status
		ORDER BY count DESC`
	return database.FetchAll[entity.ProjectStatusCount](ctx, r.db, query)
}

func (r *dashboardRepository) RecentProjects(ctx context.Context) ([]entity.RecentProject, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.status,
			p.created_at,
			t.name AS team_name,
			(SELECT COUNT(*) FROM project_technologies WHERE project_id = p.id) AS tech_count
		FROM projects p
		LEFT JOIN teams t ON p.team_id = t.id
		ORDER BY p.created_at DESC
		LIMIT 5`
	return database.FetchAll[entity.RecentProject](ctx, r.db, query)
}

func (r *dashboardRepository) TeamSummary(ctx context.Context) ([]entity.TeamSummary, error) {
	query := `
		SELECT
			t.id,
			t.name,
			COUNT(DISTINCT p.id) AS project_count,
			u.full_name AS lead_name
		FROM teams t
		LEFT JOIN projects p ON p.team_id = t.id
		LEFT JOIN users u ON t.lead_id = u.id
		GROUP BY t.id, t.name, u.full_name
		ORDER BY project_count DESC
		LIMIT 5`
	return database.FetchAll[entity.TeamSummary](ctx, r.db, query)
}

func (r *dashboardRepository) TechnologyByCategory(ctx context.Context) ([]entity.CategoryCount, error) {
	query := `
		SELECT
			tc.name AS category,
			COUNT(t.id) AS count
		FROM technology_categories tc
		LEFT JOIN technologies t ON tc.id = t.category_id
		GROUP BY tc.id, tc.name
		ORDER BY count DESC`
	return database.FetchAll[entity.CategoryCount](ctx, r.db, query)
}
