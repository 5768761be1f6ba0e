package entity

import "time"

// ArchiveCandidate is one project returned by the archive_inactive_projects
// database procedure, in preview or execute mode.
type ArchiveCandidate struct {
	ProjectID    int64      `json:"project_id"`
	ProjectName  string     `json:"project_name"`
	Status       string     `json:"status"`
	LastActivity *time.Time `json:"last_activity"`
}

// ArchiveLogEntry is one row of the append-only archive operation history.
type ArchiveLogEntry struct {
	ID             int64     `json:"id"`
	ArchivedCount  int64     `json:"archived_count"`
	InactiveDays   int64     `json:"inactive_days"`
	ArchivedBy     *int64    `json:"archived_by"`
	ArchivedByName *string   `json:"archived_by_name"`
	CreatedAt      time.Time `json:"created_at"`
}
