package repository

import (
	"context"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
)

// TechnologyRepository defines data access for technologies, their
// categories, statuses and versions.
type TechnologyRepository interface {
	Count(ctx context.Context, where string, args []any) (int64, error)
	List(ctx context.Context, where string, args []any, orderBy string, limit, offset int) ([]entity.Technology, error)
	GetByID(ctx context.Context, id int64) (*entity.Technology, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, in entity.TechnologyInput, statusID int64) (*entity.Technology, error)
	// Update is a full replace of the writable fields.
	Update(ctx context.Context, id int64, in entity.TechnologyInput, statusID int64) (*entity.Technology, error)
	Delete(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]entity.TechnologyCategory, error)
	GetCategoryByID(ctx context.Context, id int64) (*entity.TechnologyCategory, error)
	GetCategoryByName(ctx context.Context, name string) (*entity.TechnologyCategory, error)
	CreateCategory(ctx context.Context, in entity.TechnologyCategoryInput) (*entity.TechnologyCategory, error)

	ListStatuses(ctx context.Context) ([]string, error)
	GetStatusByName(ctx context.Context, name string) (*entity.TechnologyStatus, error)
	CreateStatus(ctx context.Context, name string) error

	// VersionBelongs reports whether the version exists and belongs to the
	// given technology.
	VersionBelongs(ctx context.Context, versionID, technologyID int64) (bool, error)

	Stats(ctx context.Context) ([]entity.TechnologyStats, *entity.TechnologyStatsSummary, error)
}
