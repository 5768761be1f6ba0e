package repository

import (
	"context"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
)

// UserRepository defines data access for user accounts. Lookups return
// (nil, nil) when no row matches; callers decide whether absence is an error.
type UserRepository interface {
	// GetByEmail returns the active user with the given email, including
	// the password hash for credential checks.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// EmailExists reports whether any row, active or not, holds the email.
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context, where string, args []any) (int64, error)
	List(ctx context.Context, where string, args []any, orderBy string, limit, offset int) ([]entity.User, error)
	Create(ctx context.Context, email, passwordHash string, fullName *string, isAdmin, isActive bool) (*entity.User, error)
	Update(ctx context.Context, id int64, email string, fullName *string, isAdmin, isActive bool) (*entity.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}
