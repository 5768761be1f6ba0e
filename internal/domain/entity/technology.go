package entity

import "time"

// Technology represents a technology row with its status name joined in.
type Technology struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	CategoryID      int64     `json:"category_id"`
	Description     *string   `json:"description"`
	OfficialWebsite *string   `json:"official_website"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TechnologyInput carries the writable technology fields. The status is
// referenced by name and resolved to its id before the write.
type TechnologyInput struct {
	Name            string
	CategoryID      int64
	Description     *string
	OfficialWebsite *string
	Status          string
}

// TechnologyCategory represents a category row.
type TechnologyCategory struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

// TechnologyCategoryInput carries the writable category fields.
type TechnologyCategoryInput struct {
	Name        string
	Description *string
	Icon        *string
}

// TechnologyStatus represents a status row.
type TechnologyStatus struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TechnologyVersion represents one labeled version of a technology.
type TechnologyVersion struct {
	ID           int64  `json:"id"`
	TechnologyID int64  `json:"technology_id"`
	Version      string `json:"version"`
}

// TechnologyStats is the per-technology usage histogram line.
type TechnologyStats struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	Category         string `json:"category"`
	ProjectCount     int64  `json:"project_count"`
	ProductionCount  int64  `json:"production_count"`
	DevelopmentCount int64  `json:"development_count"`
	TestingCount     int64  `json:"testing_count"`
}

// TechnologyStatsSummary holds the aggregate totals for the stats endpoint.
type TechnologyStatsSummary struct {
	TotalTechnologies int64 `json:"total_technologies"`
	TotalProjects     int64 `json:"total_projects"`
	TotalUsages       int64 `json:"total_usages"`
	TotalCategories   int64 `json:"total_categories"`
}
