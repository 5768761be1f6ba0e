package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	"go.uber.org/zap"
)

type projectRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewProjectRepository creates the project repository.
func NewProjectRepository(db *database.DB, logger *zap.Logger) repository.ProjectRepository {
	return &projectRepository{db: db, logger: logger}
}

func (r *projectRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM projects p WHERE %s`, where)
	return database.FetchVal[int64](ctx, r.db, query, args...)
}

func (r *projectRepository) List(ctx context.Context, where string, args []any, orderBy string, limit, offset int) ([]entity.Project, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.team_id, p.status,
		       p.repository_url, p.start_date, p.created_at, p.updated_at
		FROM projects p
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`, where, orderBy)
	return database.FetchAll[entity.Project](ctx, r.db, query, append(args, limit, offset)...)
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	query := `
		SELECT id, name, description, team_id, status, repository_url,
		       start_date, created_at, updated_at
		FROM projects
		WHERE id = ?`
	return database.FetchOne[entity.Project](ctx, r.db, query, id)
}

func (r *projectRepository) Create(ctx context.Context, in entity.ProjectInput) (*entity.Project, error) {
	query := `
		INSERT INTO projects (
			name, description, team_id, status, repository_url,
			start_date, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
		RETURNING id, name, description, team_id, status, repository_url,
		          start_date, created_at, updated_at`
	project, err := database.FetchOne[entity.Project](ctx, r.db, query,
		in.Name, in.Description, in.TeamID, in.Status, in.RepositoryURL, in.StartDate)
	if err != nil {
		r.logger.Error("failed to create project", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	return project, nil
}

// Patch builds the SET list from the non-nil patch fields. A patch with no
// fields set still touches updated_at and returns the current row.
func (r *projectRepository) Patch(ctx context.Context, id int64, patch entity.ProjectPatch) (*entity.Project, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.TeamID != nil {
		sets = append(sets, "team_id = ?")
		args = append(args, *patch.TeamID)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.RepositoryURL != nil {
		sets = append(sets, "repository_url = ?")
		args = append(args, *patch.RepositoryURL)
	}
	if patch.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *patch.StartDate)
	}
	query := fmt.Sprintf(`
		UPDATE projects
		SET %s
		WHERE id = ?
		RETURNING id, name, description, team_id, status, repository_url,
		          start_date, created_at, updated_at`, strings.Join(sets, ", "))
	return database.FetchOne[entity.Project](ctx, r.db, query, append(args, id)...)
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	return database.Exec(ctx, r.db, `DELETE FROM projects WHERE id = ?`, id)
}

const projectTechnologySelect = `
	SELECT pt.id, pt.project_id, pt.technology_id,
	       t.name AS technology_name,
	       pt.version_id,
	       tv.version AS version_number,
	       pt.usage_type, pt.notes, pt.added_at,
	       tc.name AS category_name,
	       ts.name AS status
	FROM project_technologies pt
	JOIN technologies t ON pt.technology_id = t.id
	LEFT JOIN technology_versions tv ON pt.version_id = tv.id
	JOIN technology_categories tc ON t.category_id = tc.id
	JOIN technology_statuses ts ON t.status_id = ts.id`

func (r *projectRepository) Technologies(ctx context.Context, projectID int64) ([]entity.ProjectTechnologyDetail, error) {
	query := projectTechnologySelect + `
	WHERE pt.project_id = ?
	ORDER BY t.name ASC`
	return database.FetchAll[entity.ProjectTechnologyDetail](ctx, r.db, query, projectID)
}

func (r *projectRepository) TechnologiesForAll(ctx context.Context, projectIDs []int64) (map[int64][]entity.ProjectTechnologyDetail, error) {
	grouped := make(map[int64][]entity.ProjectTechnologyDetail, len(projectIDs))
	if len(projectIDs) == 0 {
		return grouped, nil
	}
	query := projectTechnologySelect + `
	WHERE pt.project_id IN ?
	ORDER BY t.name ASC`
	rows, err := database.FetchAll[entity.ProjectTechnologyDetail](ctx, r.db, query, projectIDs)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.ProjectID] = append(grouped[row.ProjectID], row)
	}
	return grouped, nil
}

func (r *projectRepository) LinkExists(ctx context.Context, projectID, technologyID int64) (bool, error) {
	row, err := database.FetchOne[entity.ProjectTechnology](ctx, r.db,
		`SELECT id FROM project_technologies WHERE project_id = ? AND technology_id = ?`,
		projectID, technologyID)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

func (r *projectRepository) AddTechnology(ctx context.Context, projectID int64, in entity.ProjectTechnologyInput) (*entity.ProjectTechnology, error) {
	query := `
		INSERT INTO project_technologies (
			project_id, technology_id, version_id, usage_type, notes, added_at
		)
		VALUES (?, ?, ?, ?, ?, NOW())
		RETURNING id, project_id, technology_id, version_id, usage_type, notes, added_at`
	link, err := database.FetchOne[entity.ProjectTechnology](ctx, r.db, query,
		projectID, in.TechnologyID, in.VersionID, in.UsageType, in.Notes)
	if err != nil {
		r.logger.Error("failed to link technology",
			zap.Int64("project_id", projectID),
			zap.Int64("technology_id", in.TechnologyID),
			zap.Error(err))
		return nil, err
	}
	return link, nil
}

func (r *projectRepository) RemoveTechnology(ctx context.Context, projectID, technologyID int64) error {
	return database.Exec(ctx, r.db,
		`DELETE FROM project_technologies WHERE project_id = ? AND technology_id = ?`,
		projectID, technologyID)
}
