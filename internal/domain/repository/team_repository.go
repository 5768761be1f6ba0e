package repository

import (
	"context"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
)

// TeamRepository defines data access for teams.
type TeamRepository interface {
	Count(ctx context.Context, where string, args []any) (int64, error)
	List(ctx context.Context, where string, args []any, orderBy string, limit, offset int) ([]entity.Team, error)
	GetByID(ctx context.Context, id int64) (*entity.Team, error)
	Create(ctx context.Context, in entity.TeamInput) (*entity.Team, error)
	// Update is a full replace of the writable fields.
	Update(ctx context.Context, id int64, in entity.TeamInput) (*entity.Team, error)
	Delete(ctx context.Context, id int64) error
}
