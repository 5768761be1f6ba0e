package repository

import (
	"context"
	"fmt"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	"go.uber.org/zap"
)

type technologyRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewTechnologyRepository creates the technology repository.
func NewTechnologyRepository(db *database.DB, logger *zap.Logger) repository.TechnologyRepository {
	return &technologyRepository{db: db, logger: logger}
}

func (r *technologyRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM technologies t
		JOIN technology_statuses ts ON t.status_id = ts.id
		WHERE %s`, where)
	return database.FetchVal[int64](ctx, r.db, query, args...)
}

func (r *technologyRepository) List(ctx context.Context, where string, args []any, orderBy string, limit, offset int) ([]entity.Technology, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.category_id, t.description, t.official_website,
		       ts.name AS status, t.created_at, t.updated_at
		FROM technologies t
		JOIN technology_statuses ts ON t.status_id = ts.id
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`, where, orderBy)
	return database.FetchAll[entity.Technology](ctx, r.db, query, append(args, limit, offset)...)
}

func (r *technologyRepository) GetByID(ctx context.Context, id int64) (*entity.Technology, error) {
	query := `
		SELECT t.id, t.name, t.category_id, t.description, t.official_website,
		       ts.name AS status, t.created_at, t.updated_at
		FROM technologies t
		JOIN technology_statuses ts ON t.status_id = ts.id
		WHERE t.id = ?`
	return database.FetchOne[entity.Technology](ctx, r.db, query, id)
}

func (r *technologyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	row, err := database.FetchOne[entity.Technology](ctx, r.db,
		`SELECT id FROM technologies WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

func (r *technologyRepository) Create(ctx context.Context, in entity.TechnologyInput, statusID int64) (*entity.Technology, error) {
	query := `
		INSERT INTO technologies (
			name, category_id, description, official_website,
			status_id, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
		RETURNING id, name, category_id, description, official_website, created_at, updated_at`
	tech, err := database.FetchOne[entity.Technology](ctx, r.db, query,
		in.Name, in.CategoryID, in.Description, in.OfficialWebsite, statusID)
	if err != nil {
		r.logger.Error("failed to create technology", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	if tech != nil {
		tech.Status = in.Status
	}
	return tech, nil
}

func (r *technologyRepository) Update(ctx context.Context, id int64, in entity.TechnologyInput, statusID int64) (*entity.Technology, error) {
	query := `
		UPDATE technologies
		SET name = ?, category_id = ?, description = ?,
		    official_website = ?, status_id = ?, updated_at = NOW()
		WHERE id = ?
		RETURNING id, name, category_id, description, official_website, created_at, updated_at`
	tech, err := database.FetchOne[entity.Technology](ctx, r.db, query,
		in.Name, in.CategoryID, in.Description, in.OfficialWebsite, statusID, id)
	if err != nil {
		return nil, err
	}
	if tech != nil {
		tech.Status = in.Status
	}
	return tech, nil
}

func (r *technologyRepository) Delete(ctx context.Context, id int64) error {
	return database.Exec(ctx, r.db, `DELETE FROM technologies WHERE id = ?`, id)
}

func (r *technologyRepository) ListCategories(ctx context.Context) ([]entity.TechnologyCategory, error) {
	query := `
		SELECT id, name, description, icon, created_at
		FROM technology_categories
		ORDER BY name ASC`
	return database.FetchAll[entity.TechnologyCategory](ctx, r.db, query)
}

func (r *technologyRepository) GetCategoryByID(ctx context.Context, id int64) (*entity.TechnologyCategory, error) {
	return database.FetchOne[entity.TechnologyCategory](ctx, r.db,
		`SELECT id FROM technology_categories WHERE id = ?`, id)
}

func (r *technologyRepository) GetCategoryByName(ctx context.Context, name string) (*entity.TechnologyCategory, error) {
	return database.FetchOne[entity.TechnologyCategory](ctx, r.db,
		`SELECT id FROM technology_categories WHERE name = ?`, name)
}

func (r *technologyRepository) CreateCategory(ctx context.Context, in entity.TechnologyCategoryInput) (*entity.TechnologyCategory, error) {
	query := `
		INSERT INTO technology_categories (name, description, icon, created_at)
		VALUES (?, ?, ?, NOW())
		RETURNING id, name, description, icon, created_at`
	return database.FetchOne[entity.TechnologyCategory](ctx, r.db, query, in.Name, in.Description, in.Icon)
}

func (r *technologyRepository) ListStatuses(ctx context.Context) ([]string, error) {
	return database.FetchAll[string](ctx, r.db,
		`SELECT name FROM technology_statuses ORDER BY name ASC`)
}

func (r *technologyRepository) GetStatusByName(ctx context.Context, name string) (*entity.TechnologyStatus, error) {
	return database.FetchOne[entity.TechnologyStatus](ctx, r.db,
		`SELECT id FROM technology_statuses WHERE name = ?`, name)
}

func (r *technologyRepository) CreateStatus(ctx context.Context, name string) error {
	return database.Exec(ctx, r.db,
		`INSERT INTO technology_statuses (name, created_at) VALUES (?, NOW())`, name)
}

func (r *technologyRepository) VersionBelongs(ctx context.Context, versionID, technologyID int64) (bool, error) {
	row, err := database.FetchOne[entity.TechnologyVersion](ctx, r.db,
		`SELECT id FROM technology_versions WHERE id = ? AND technology_id = ?`,
		versionID, technologyID)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

func (r *technologyRepository) Stats(ctx context.Context) ([]entity.TechnologyStats, *entity.TechnologyStatsSummary, error) {
	itemsQuery := `
		SELECT
			t.id,
			t.name,
			ts.name AS status,
			tc.name AS category,
			COUNT(DISTINCT pt.project_id) AS project_count,
			COUNT(DISTINCT CASE WHEN pt.usage_type = 'production' THEN pt.project_id END) AS production_count,
			COUNT(DISTINCT CASE WHEN pt.usage_type = 'development' THEN pt.project_id END) AS development_count,
			COUNT(DISTINCT CASE WHEN pt.usage_type = 'testing' THEN pt.project_id END) AS testing_count
		FROM technologies t
		JOIN technology_statuses ts ON t.status_id = ts.id
		JOIN technology_categories tc ON t.category_id = tc.id
		LEFT JOIN project_technologies pt ON t.id = pt.technology_id
		GROUP BY t.id, t.name, ts.name, tc.name
		ORDER BY project_count DESC, t.name ASC
		LIMIT 100`
	items, err := database.FetchAll[entity.TechnologyStats](ctx, r.db, itemsQuery)
	if err != nil {
		return nil, nil, err
	}

	summaryQuery := `
		SELECT
			(SELECT COUNT(*) FROM technologies) AS total_technologies,
			(SELECT COUNT(*) FROM projects) AS total_projects,
			(SELECT COUNT(*) FROM project_technologies) AS total_usages,
			(SELECT COUNT(*) FROM technology_categories) AS total_categories`
	summary, err := database.FetchOne[entity.TechnologyStatsSummary](ctx, r.db, summaryQuery)
	if err != nil {
		return nil, nil, err
	}
	return items, summary, nil
}
