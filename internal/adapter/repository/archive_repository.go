package repository

import (
	"context"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	"go.uber.org/zap"
)

type archiveRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewArchiveRepository creates the archive repository.
func NewArchiveRepository(db *database.DB, logger *zap.Logger) repository.ArchiveRepository {
	return &archiveRepository{db: db, logger: logger}
}

func (r *archiveRepository) Preview(ctx context.Context, inactiveDays int) ([]entity.ArchiveCandidate, error) {
	return database.FetchAll[entity.ArchiveCandidate](ctx, r.db,
		`SELECT * FROM archive_inactive_projects(?, true)`, inactiveDays)
}

func (r *archiveRepository) Execute(ctx context.Context, inactiveDays int, userID int64) ([]entity.ArchiveCandidate, error) {
	archived, err := database.FetchAll[entity.ArchiveCandidate](ctx, r.db,
		`SELECT * FROM archive_inactive_projects(?, false)`, inactiveDays)
	if err != nil {
		return nil, err
	}
	// The procedure writes the log row itself; stamp the operator on it.
	err = database.Exec(ctx, r.db,
		`UPDATE archive_log SET archived_by = ? WHERE id = (SELECT MAX(id) FROM archive_log)`, userID)
	if err != nil {
		r.logger.Error("failed to stamp archive operator",
			zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return archived, nil
}

func (r *archiveRepository) History(ctx context.Context, limit int) ([]entity.ArchiveLogEntry, error) {
	return database.FetchAll[entity.ArchiveLogEntry](ctx, r.db,
		`SELECT * FROM get_archive_history(?)`, limit)
}
