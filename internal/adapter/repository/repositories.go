package repository

import (
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
)

// NewRepositories builds the full repository set over one connection pool.
func NewRepositories(db *database.DB, logger *zap.Logger) *database.Repositories {
	return &database.Repositories{
		User:       NewUserRepository(db, logger),
		Team:       NewTeamRepository(db, logger),
		Project:    NewProjectRepository(db, logger),
		Technology: NewTechnologyRepository(db, logger),
		Dashboard:  NewDashboardRepository(db, logger),
		Archive:    NewArchiveRepository(db, logger),
	}
}
