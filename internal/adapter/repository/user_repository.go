// Package repository contains the raw-SQL implementations of the domain
// repository interfaces. Every operation is one parameterized statement over
// the shared pool; cross-entity consistency checks belong to the handlers.
package repository

import (
	"context"
	"fmt"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	"go.uber.org/zap"
)

type userRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewUserRepository creates the user repository.
func NewUserRepository(db *database.DB, logger *zap.Logger) repository.UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, full_name,
		       is_admin, is_active, created_at, updated_at
		FROM users
		WHERE email = ? AND is_active = TRUE`
	return database.FetchOne[entity.User](ctx, r.db, query, email)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, email, full_name, is_admin, is_active,
		       created_at, updated_at
		FROM users
		WHERE id = ?`
	return database.FetchOne[entity.User](ctx, r.db, query, id)
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	row, err := database.FetchOne[entity.User](ctx, r.db, `SELECT id FROM users WHERE email = ?`, email)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

func (r *userRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM users u WHERE %s`, where)
	return database.FetchVal[int64](ctx, r.db, query, args...)
}

func (r *userRepository) List(ctx context.Context, where string, args []any, orderBy string, limit, offset int) ([]entity.User, error) {
	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.full_name, u.is_admin, u.is_active,
		       u.created_at, u.updated_at
		FROM users u
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`, where, orderBy)
	return database.FetchAll[entity.User](ctx, r.db, query, append(args, limit, offset)...)
}

func (r *userRepository) Create(ctx context.Context, email, passwordHash string, fullName *string, isAdmin, isActive bool) (*entity.User, error) {
	query := `
		INSERT INTO users (email, password_hash, full_name, is_admin, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
		RETURNING id, email, full_name, is_admin, is_active, created_at, updated_at`
	user, err := database.FetchOne[entity.User](ctx, r.db, query, email, passwordHash, fullName, isAdmin, isActive)
	if err != nil {
		r.logger.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, email string, fullName *string, isAdmin, isActive bool) (*entity.User, error) {
	query := `
		UPDATE users
		SET email = ?, full_name = ?, is_admin = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?
		RETURNING id, email, full_name, is_admin, is_active, created_at, updated_at`
	return database.FetchOne[entity.User](ctx, r.db, query, email, fullName, isAdmin, isActive, id)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return database.Exec(ctx, r.db,
		`UPDATE users SET password_hash = ?, updated_at = NOW() WHERE id = ?`, passwordHash, id)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return database.Exec(ctx, r.db, `DELETE FROM users WHERE id = ?`, id)
}
