package repository

import (
	"context"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
)

// ArchiveRepository wraps the database-side archiving procedures.
type ArchiveRepository interface {
	// Preview runs the archiving procedure in dry-run mode.
	Preview(ctx context.Context, inactiveDays int) ([]entity.ArchiveCandidate, error)
	// Execute archives inactive projects and stamps the operator on the
	// resulting archive log entry.
	Execute(ctx context.Context, inactiveDays int, userID int64) ([]entity.ArchiveCandidate, error)
	History(ctx context.Context, limit int) ([]entity.ArchiveLogEntry, error)
}
