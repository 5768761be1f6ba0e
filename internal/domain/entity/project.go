package entity

import "time"

// Project represents a project row.
type Project struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	TeamID        *int64     `json:"team_id"`
	Status        string     `json:"status"`
	RepositoryURL *string    `json:"repository_url"`
	StartDate     *time.Time `json:"start_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProjectWithTechnologies is a project list item carrying its associated
// technologies, attached by a batched secondary query.
type ProjectWithTechnologies struct {
	Project
	Technologies []ProjectTechnologyDetail `json:"technologies"`
}

// ProjectInput carries the writable project fields for create.
type ProjectInput struct {
	Name          string
	Description   *string
	TeamID        *int64
	Status        string
	RepositoryURL *string
	StartDate     *time.Time
}

// ProjectPatch carries a sparse set of project fields; only non-nil fields
// are applied on update.
type ProjectPatch struct {
	Name          *string
	Description   *string
	TeamID        *int64
	Status        *string
	RepositoryURL *string
	StartDate     *time.Time
}

// ProjectTechnology represents one project-technology association row.
type ProjectTechnology struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"project_id"`
	TechnologyID int64     `json:"technology_id"`
	VersionID    *int64    `json:"version_id"`
	UsageType    string    `json:"usage_type"`
	Notes        *string   `json:"notes"`
	AddedAt      time.Time `json:"added_at"`
}

// ProjectTechnologyInput carries the writable association fields.
type ProjectTechnologyInput struct {
	TechnologyID int64
	VersionID    *int64
	UsageType    string
	Notes        *string
}

// ProjectTechnologyDetail is an association row joined with technology,
// version, category and status names.
type ProjectTechnologyDetail struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	TechnologyID   int64     `json:"technology_id"`
	TechnologyName string    `json:"technology_name"`
	VersionID      *int64    `json:"version_id"`
	VersionNumber  *string   `json:"version_number"`
	UsageType      string    `json:"usage_type"`
	Notes          *string   `json:"notes"`
	AddedAt        time.Time `json:"added_at"`
	CategoryName   string    `json:"category_name"`
	Status         string    `json:"status"`
}
