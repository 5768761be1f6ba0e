package repository

import (
	"context"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
)

// ProjectRepository defines data access for projects and their technology
// associations.
type ProjectRepository interface {
	Count(ctx context.Context, where string, args []any) (int64, error)
	List(ctx context.Context, where string, args []any, orderBy string, limit, offset int) ([]entity.Project, error)
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	Create(ctx context.Context, in entity.ProjectInput) (*entity.Project, error)
	// Patch applies only the non-nil fields and returns the post-update row.
	Patch(ctx context.Context, id int64, patch entity.ProjectPatch) (*entity.Project, error)
	Delete(ctx context.Context, id int64) error

	Technologies(ctx context.Context, projectID int64) ([]entity.ProjectTechnologyDetail, error)
	// TechnologiesForAll batches the association lookup for a page of
	// projects and groups the rows by project id.
	TechnologiesForAll(ctx context.Context, projectIDs []int64) (map[int64][]entity.ProjectTechnologyDetail, error)
	LinkExists(ctx context.Context, projectID, technologyID int64) (bool, error)
	AddTechnology(ctx context.Context, projectID int64, in entity.ProjectTechnologyInput) (*entity.ProjectTechnology, error)
	RemoveTechnology(ctx context.Context, projectID, technologyID int64) error
}
