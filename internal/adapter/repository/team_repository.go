package repository

import (
	"context"
	"fmt"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	"go.uber.org/zap"
)

type teamRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewTeamRepository creates the team repository.
func NewTeamRepository(db *database.DB, logger *zap.Logger) repository.TeamRepository {
	return &teamRepository{db: db, logger: logger}
}

func (r *teamRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM teams t WHERE %s`, where)
	return database.FetchVal[int64](ctx, r.db, query, args...)
}

func (r *teamRepository) List(ctx context.Context, where string, args []any, orderBy string, limit, offset int) ([]entity.Team, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.description, t.lead_id,
		       t.created_at, t.updated_at
		FROM teams t
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`, where, orderBy)
	return database.FetchAll[entity.Team](ctx, r.db, query, append(args, limit, offset)...)
}

func (r *teamRepository) GetByID(ctx context.Context, id int64) (*entity.Team, error) {
	query := `
		SELECT id, name, description, lead_id, created_at, updated_at
		FROM teams
		WHERE id = ?`
	return database.FetchOne[entity.Team](ctx, r.db, query, id)
}

func (r *teamRepository) Create(ctx context.Context, in entity.TeamInput) (*entity.Team, error) {
	query := `
		INSERT INTO teams (name, description, lead_id, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		RETURNING id, name, description, lead_id, created_at, updated_at`
	team, err := database.FetchOne[entity.Team](ctx, r.db, query, in.Name, in.Description, in.LeadID)
	if err != nil {
		r.logger.Error("failed to create team", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	return team, nil
}

func (r *teamRepository) Update(ctx context.Context, id int64, in entity.TeamInput) (*entity.Team, error) {
	query := `
		UPDATE teams
		SET name = ?, description = ?, lead_id = ?, updated_at = NOW()
		WHERE id = ?
		RETURNING id, name, description, lead_id, created_at, updated_at`
	return database.FetchOne[entity.Team](ctx, r.db, query, in.Name, in.Description, in.LeadID, id)
}

func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	return database.Exec(ctx, r.db, `DELETE FROM teams WHERE id = ?`, id)
}
