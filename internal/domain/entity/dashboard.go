package entity

import "time"

// DashboardOverview holds the global entity counts.
type DashboardOverview struct {
	TotalProjects     int64 `json:"total_projects"`
	TotalTechnologies int64 `json:"total_technologies"`
	TotalTeams        int64 `json:"total_teams"`
	TotalUsers        int64 `json:"total_users"`
}

// TechnologyUsage is one line of the most-used-technologies aggregate.
type TechnologyUsage struct {
	Name         string  `json:"name"`
	ProjectCount int64   `json:"project_count"`
	CategoryName *string `json:"category_name"`
}

// ProjectStatusCount is one line of the project status histogram.
type ProjectStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// RecentProject is one line of the latest-projects aggregate.
type RecentProject struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	TeamName  *string   `json:"team_name"`
	TechCount int64     `json:"tech_count"`
}

// TeamSummary is one line of the top-teams-by-projects aggregate.
type TeamSummary struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ProjectCount int64   `json:"project_count"`
	LeadName     *string `json:"lead_name"`
}

// CategoryCount is one line of the technologies-per-category aggregate.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// DashboardStats merges all six dashboard aggregates into one response.
type DashboardStats struct {
	Overview                  DashboardOverview    `json:"overview"`
	TechnologyUsage           []TechnologyUsage    `json:"technology_usage"`
	ProjectStatusDistribution []ProjectStatusCount `json:"project_status_distribution"`
	RecentProjects            []RecentProject      `json:"recent_projects"`
	TeamSummary               []TeamSummary        `json:"team_summary"`
	TechnologyByCategory      []CategoryCount      `json:"technology_by_category"`
}
