package http

import (
	nethttp "net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
)

var projectSortFields = database.SortFieldMap{
	"name":       "p.name",
	"status":     "p.status",
	"created_at": "p.created_at",
	"team_id":    "p.team_id",
}

// ProjectHandler serves project CRUD and the project-technology links.
type ProjectHandler struct {
	logger       *zap.Logger
	projects     repository.ProjectRepository
	teams        repository.TeamRepository
	technologies repository.TechnologyRepository
}

// NewProjectHandler creates the project handler.
func NewProjectHandler(
	logger *zap.Logger,
	projects repository.ProjectRepository,
	teams repository.TeamRepository,
	technologies repository.TechnologyRepository,
) *ProjectHandler {
	return &ProjectHandler{
		logger:       logger,
		projects:     projects,
		teams:        teams,
		technologies: technologies,
	}
}

// CreateProjectRequest is the project creation payload.
type CreateProjectRequest struct {
	Name          string     `json:"name" validate:"required,max=255"`
	Description   *string    `json:"description"`
	TeamID        *int64     `json:"team_id"`
	Status        string     `json:"status" validate:"required"`
	RepositoryURL *string    `json:"repository_url"`
	StartDate     *time.Time `json:"start_date"`
}

// UpdateProjectRequest is the sparse project update payload. Only fields
// present in the body are applied.
type UpdateProjectRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	TeamID        *int64     `json:"team_id"`
	Status        *string    `json:"status"`
	RepositoryURL *string    `json:"repository_url"`
	StartDate     *time.Time `json:"start_date"`
}

// AddTechnologyRequest is the project-technology link payload.
type AddTechnologyRequest struct {
	TechnologyID int64   `json:"technology_id" validate:"required"`
	VersionID    *int64  `json:"version_id"`
	UsageType    string  `json:"usage_type" validate:"required"`
	Notes        *string `json:"notes"`
}

// checkTeam verifies the referenced team exists.
func (h *ProjectHandler) checkTeam(c echo.Context, teamID *int64) error {
	if teamID == nil {
		return nil
	}
	team, err := h.teams.GetByID(c.Request().Context(), *teamID)
	if err != nil {
		return apperrors.Wrap(err, "check team")
	}
	if team == nil {
		return apperrors.NotFoundf("Team with id=%d not found", *teamID)
	}
	return nil
}

// ListProjects returns a filtered, sorted page of projects with their
// technologies attached by a single batched lookup.
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return err
	}
	column, field := database.ResolveSortField(projectSortFields, params.SortBy)
	params.SortBy = field

	var where database.WhereBuilder
	where.Search(c.QueryParam("q"), "p.name", "p.description")
	if status := c.QueryParam("status"); status != "" {
		where.Equal("p.status", status)
	}
	teamID, err := queryInt(c, "team_id", 0)
	if err != nil {
		return err
	}
	if teamID != 0 {
		where.Equal("p.team_id", teamID)
	}
	clause, args := where.Clause()

	ctx := c.Request().Context()
	total, err := h.projects.Count(ctx, clause, args)
	if err != nil {
		return apperrors.Wrap(err, "count projects")
	}
	projects, err := h.projects.List(ctx, clause, args,
		database.OrderBy(column, params.SortOrder), params.PageSize, params.Offset())
	if err != nil {
		return apperrors.Wrap(err, "list projects")
	}

	ids := make([]int64, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	techByProject, err := h.projects.TechnologiesForAll(ctx, ids)
	if err != nil {
		return apperrors.Wrap(err, "load project technologies")
	}

	items := make([]entity.ProjectWithTechnologies, len(projects))
	for i, p := range projects {
		techs := techByProject[p.ID]
		if techs == nil {
			techs = []entity.ProjectTechnologyDetail{}
		}
		items[i] = entity.ProjectWithTechnologies{Project: p, Technologies: techs}
	}

	return c.JSON(nethttp.StatusOK, entity.NewPaginatedResponse(items, total, params))
}

// GetProject returns one project by id.
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := pathID(c, "project_id")
	if err != nil {
		return err
	}
	project, err := h.projects.GetByID(c.Request().Context(), id)
	if err != nil {
		return apperrors.Wrap(err, "get project")
	}
	if project == nil {
		return apperrors.NotFoundf("Project with id=%d not found", id)
	}
	return c.JSON(nethttp.StatusOK, project)
}

// CreateProject creates a project after validating its team reference.
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkTeam(c, req.TeamID); err != nil {
		return err
	}

	project, err := h.projects.Create(c.Request().Context(), entity.ProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		TeamID:        req.TeamID,
		Status:        req.Status,
		RepositoryURL: req.RepositoryURL,
		StartDate:     req.StartDate,
	})
	if err != nil {
		return apperrors.Wrap(err, "create project")
	}
	h.logger.Info("project created", zap.Int64("project_id", project.ID))
	return c.JSON(nethttp.StatusCreated, project)
}

// UpdateProject applies the fields present in the body and leaves the rest
// untouched.
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := pathID(c, "project_id")
	if err != nil {
		return err
	}
	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}

	ctx := c.Request().Context()
	existing, err := h.projects.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get project")
	}
	if existing == nil {
		return apperrors.NotFoundf("Project with id=%d not found", id)
	}
	if err := h.checkTeam(c, req.TeamID); err != nil {
		return err
	}

	project, err := h.projects.Patch(ctx, id, entity.ProjectPatch{
		Name:          req.Name,
		Description:   req.Description,
		TeamID:        req.TeamID,
		Status:        req.Status,
		RepositoryURL: req.RepositoryURL,
		StartDate:     req.StartDate,
	})
	if err != nil {
		return apperrors.Wrap(err, "update project")
	}
	return c.JSON(nethttp.StatusOK, project)
}

// DeleteProject removes a project.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.projects.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get project")
	}
	if existing == nil {
		return apperrors.NotFoundf("Project with id=%d not found", id)
	}

	if err := h.projects.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete project")
	}
	return c.NoContent(nethttp.StatusNoContent)
}

// ListProjectTechnologies returns the project's technology links with
// joined details.
func (h *ProjectHandler) ListProjectTechnologies(c echo.Context) error {
	id, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.projects.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get project")
	}
	if existing == nil {
		return apperrors.NotFoundf("Project with id=%d not found", id)
	}

	items, err := h.projects.Technologies(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "list project technologies")
	}
	if items == nil {
		items = []entity.ProjectTechnologyDetail{}
	}
	return c.JSON(nethttp.StatusOK, items)
}

// AddProjectTechnology links a technology to a project. One link per
// technology per project; repeats conflict.
func (h *ProjectHandler) AddProjectTechnology(c echo.Context) error {
	id, err := pathID(c, "project_id")
	if err != nil {
		return err
	}
	var req AddTechnologyRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.projects.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get project")
	}
	if existing == nil {
		return apperrors.NotFoundf("Project with id=%d not found", id)
	}

	techExists, err := h.technologies.Exists(ctx, req.TechnologyID)
	if err != nil {
		return apperrors.Wrap(err, "check technology")
	}
	if !techExists {
		return apperrors.NotFoundf("Technology with id=%d not found", req.TechnologyID)
	}

	if req.VersionID != nil {
		belongs, err := h.technologies.VersionBelongs(ctx, *req.VersionID, req.TechnologyID)
		if err != nil {
			return apperrors.Wrap(err, "check version")
		}
		if !belongs {
			return apperrors.NotFoundf("Version with id=%d not found for this technology", *req.VersionID)
		}
	}

	duplicate, err := h.projects.LinkExists(ctx, id, req.TechnologyID)
	if err != nil {
		return apperrors.Wrap(err, "check duplicate link")
	}
	if duplicate {
		return apperrors.Conflictf("This technology is already added to the project")
	}

	link, err := h.projects.AddTechnology(ctx, id, entity.ProjectTechnologyInput{
		TechnologyID: req.TechnologyID,
		VersionID:    req.VersionID,
		UsageType:    req.UsageType,
		Notes:        req.Notes,
	})
	if err != nil {
		return apperrors.Wrap(err, "add technology to project")
	}
	return c.JSON(nethttp.StatusCreated, link)
}

// RemoveProjectTechnology unlinks a technology from a project.
func (h *ProjectHandler) RemoveProjectTechnology(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}
	technologyID, err := pathID(c, "technology_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	linked, err := h.projects.LinkExists(ctx, projectID, technologyID)
	if err != nil {
		return apperrors.Wrap(err, "check link")
	}
	if !linked {
		return apperrors.NotFoundf("Project-technology link not found")
	}

	if err := h.projects.RemoveTechnology(ctx, projectID, technologyID); err != nil {
		return apperrors.Wrap(err, "remove technology from project")
	}
	return c.NoContent(nethttp.StatusNoContent)
}
