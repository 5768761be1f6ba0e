package database

import (
	"github.com/Sadisms/stack-radar/internal/domain/repository"
)

// Repositories aggregates the repository implementations behind their
// domain interfaces.
type Repositories struct {
	User       repository.UserRepository
	Team       repository.TeamRepository
	Project    repository.ProjectRepository
	Technology repository.TechnologyRepository
	Dashboard  repository.DashboardRepository
	Archive    repository.ArchiveRepository
}
