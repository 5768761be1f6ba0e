package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/infrastructure/database"
	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
)

var teamSortFields = database.SortFieldMap{
	"name":       "t.name",
	"created_at": "t.created_at",
}

// TeamHandler serves team CRUD.
type TeamHandler struct {
	logger *zap.Logger
	teams  repository.TeamRepository
	users  repository.UserRepository
}

// NewTeamHandler creates the team handler.
func NewTeamHandler(logger *zap.Logger, teams repository.TeamRepository, users repository.UserRepository) *TeamHandler {
	return &TeamHandler{logger: logger, teams: teams, users: users}
}

// TeamRequest is the team create/update payload.
type TeamRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	LeadID      *int64  `json:"lead_id"`
}

func (r TeamRequest) input() entity.TeamInput {
	return entity.TeamInput{Name: r.Name, Description: r.Description, LeadID: r.LeadID}
}

// checkLead verifies the referenced lead user exists.
func (h *TeamHandler) checkLead(c echo.Context, leadID *int64) error {
	if leadID == nil {
		return nil
	}
	lead, err := h.users.GetByID(c.Request().Context(), *leadID)
	if err != nil {
		return apperrors.Wrap(err, "check team lead")
	}
	if lead == nil {
		return apperrors.NotFoundf("User with id=%d not found", *leadID)
	}
	return nil
}

// ListTeams returns a filtered, sorted page of teams.
func (h *TeamHandler) ListTeams(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return err
	}
	column, field := database.ResolveSortField(teamSortFields, params.SortBy)
	params.SortBy = field

	var where database.WhereBuilder
	where.Search(c.QueryParam("q"), "t.name", "t.description")
	clause, args := where.Clause()

	ctx := c.Request().Context()
	total, err := h.teams.Count(ctx, clause, args)
	if err != nil {
		return apperrors.Wrap(err, "count teams")
	}
	items, err := h.teams.List(ctx, clause, args,
		database.OrderBy(column, params.SortOrder), params.PageSize, params.Offset())
	if err != nil {
		return apperrors.Wrap(err, "list teams")
	}

	return c.JSON(nethttp.StatusOK, entity.NewPaginatedResponse(items, total, params))
}

// GetTeam returns one team by id.
func (h *TeamHandler) GetTeam(c echo.Context) error {
	id, err := pathID(c, "team_id")
	if err != nil {
		return err
	}
	team, err := h.teams.GetByID(c.Request().Context(), id)
	if err != nil {
		return apperrors.Wrap(err, "get team")
	}
	if team == nil {
		return apperrors.NotFoundf("Team with id=%d not found", id)
	}
	return c.JSON(nethttp.StatusOK, team)
}

// CreateTeam creates a team after validating its lead reference.
func (h *TeamHandler) CreateTeam(c echo.Context) error {
	var req TeamRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkLead(c, req.LeadID); err != nil {
		return err
	}

	team, err := h.teams.Create(c.Request().Context(), req.input())
	if err != nil {
		return apperrors.Wrap(err, "create team")
	}
	h.logger.Info("team created", zap.Int64("team_id", team.ID))
	return c.JSON(nethttp.StatusCreated, team)
}

// UpdateTeam replaces the writable team fields.
func (h *TeamHandler) UpdateTeam(c echo.Context) error {
	id, err := pathID(c, "team_id")
	if err != nil {
		return err
	}
	var req TeamRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.teams.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get team")
	}
	if existing == nil {
		return apperrors.NotFoundf("Team with id=%d not found", id)
	}
	if err := h.checkLead(c, req.LeadID); err != nil {
		return err
	}

	team, err := h.teams.Update(ctx, id, req.input())
	if err != nil {
		return apperrors.Wrap(err, "update team")
	}
	return c.JSON(nethttp.StatusOK, team)
}

// DeleteTeam removes a team.
func (h *TeamHandler) DeleteTeam(c echo.Context) error {
	id, err := pathID(c, "team_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.teams.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get team")
	}
	if existing == nil {
		return apperrors.NotFoundf("Team with id=%d not found", id)
	}

	if err := h.teams.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete team")
	}
	return c.NoContent(nethttp.StatusNoContent)
}
