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

var technologySortFields = database.SortFieldMap{
	"name":       "t.name",
	"status":     "ts.name",
	"created_at": "t.created_at",
}

// TechnologyHandler serves technology CRUD, categories, statuses and the
// usage statistics endpoint.
type TechnologyHandler struct {
	logger       *zap.Logger
	technologies repository.TechnologyRepository
}

// NewTechnologyHandler creates the technology handler.
func NewTechnologyHandler(logger *zap.Logger, technologies repository.TechnologyRepository) *TechnologyHandler {
	return &TechnologyHandler{logger: logger, technologies: technologies}
}

// TechnologyRequest is the technology create/update payload. Status is
// referenced by name.
type TechnologyRequest struct {
	Name            string  `json:"name" validate:"required,max=255"`
	CategoryID      int64   `json:"category_id" validate:"required"`
	Description     *string `json:"description"`
	OfficialWebsite *string `json:"official_website"`
	Status          string  `json:"status" validate:"required"`
}

// CategoryRequest is the category creation payload.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// StatsResponse bundles the per-technology histogram with the totals.
type StatsResponse struct {
	Technologies []entity.TechnologyStats       `json:"technologies"`
	Summary      *entity.TechnologyStatsSummary `json:"summary"`
}

// resolveStatus looks up the status id for a status name.
func (h *TechnologyHandler) resolveStatus(c echo.Context, name string) (int64, error) {
	status, err := h.technologies.GetStatusByName(c.Request().Context(), name)
	if err != nil {
		return 0, apperrors.Wrap(err, "check status")
	}
	if status == nil {
		return 0, apperrors.NotFoundf("Status %q not found", name)
	}
	return status.ID, nil
}

// checkCategory verifies the referenced category exists.
func (h *TechnologyHandler) checkCategory(c echo.Context, categoryID int64) error {
	category, err := h.technologies.GetCategoryByID(c.Request().Context(), categoryID)
	if err != nil {
		return apperrors.Wrap(err, "check category")
	}
	if category == nil {
		return apperrors.NotFoundf("Category with id=%d not found", categoryID)
	}
	return nil
}

// ListTechnologies returns a filtered, sorted page of technologies.
func (h *TechnologyHandler) ListTechnologies(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return err
	}
	column, field := database.ResolveSortField(technologySortFields, params.SortBy)
	params.SortBy = field

	var where database.WhereBuilder
	where.Search(c.QueryParam("q"), "t.name", "t.description")
	if status := c.QueryParam("status"); status != "" {
		where.Equal("ts.name", status)
	}
	categoryID, err := queryInt(c, "category_id", 0)
	if err != nil {
		return err
	}
	if categoryID != 0 {
		where.Equal("t.category_id", categoryID)
	}
	clause, args := where.Clause()

	ctx := c.Request().Context()
	total, err := h.technologies.Count(ctx, clause, args)
	if err != nil {
		return apperrors.Wrap(err, "count technologies")
	}
	items, err := h.technologies.List(ctx, clause, args,
		database.OrderBy(column, params.SortOrder), params.PageSize, params.Offset())
	if err != nil {
		return apperrors.Wrap(err, "list technologies")
	}

	return c.JSON(nethttp.StatusOK, entity.NewPaginatedResponse(items, total, params))
}

// GetTechnology returns one technology by id.
func (h *TechnologyHandler) GetTechnology(c echo.Context) error {
	id, err := pathID(c, "tech_id")
	if err != nil {
		return err
	}
	tech, err := h.technologies.GetByID(c.Request().Context(), id)
	if err != nil {
		return apperrors.Wrap(err, "get technology")
	}
	if tech == nil {
		return apperrors.NotFoundf("Technology with id=%d not found", id)
	}
	return c.JSON(nethttp.StatusOK, tech)
}

// CreateTechnology creates a technology after resolving its category and
// status references.
func (h *TechnologyHandler) CreateTechnology(c echo.Context) error {
	var req TechnologyRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkCategory(c, req.CategoryID); err != nil {
		return err
	}
	statusID, err := h.resolveStatus(c, req.Status)
	if err != nil {
		return err
	}

	tech, err := h.technologies.Create(c.Request().Context(), entity.TechnologyInput{
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		OfficialWebsite: req.OfficialWebsite,
		Status:          req.Status,
	}, statusID)
	if err != nil {
		return apperrors.Wrap(err, "create technology")
	}
	h.logger.Info("technology created", zap.Int64("technology_id", tech.ID))
	return c.JSON(nethttp.StatusCreated, tech)
}

// UpdateTechnology replaces the writable technology fields.
func (h *TechnologyHandler) UpdateTechnology(c echo.Context) error {
	id, err := pathID(c, "tech_id")
	if err != nil {
		return err
	}
	var req TechnologyRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	exists, err := h.technologies.Exists(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get technology")
	}
	if !exists {
		return apperrors.NotFoundf("Technology with id=%d not found", id)
	}
	if err := h.checkCategory(c, req.CategoryID); err != nil {
		return err
	}
	statusID, err := h.resolveStatus(c, req.Status)
	if err != nil {
		return err
	}

	tech, err := h.technologies.Update(ctx, id, entity.TechnologyInput{
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		OfficialWebsite: req.OfficialWebsite,
		Status:          req.Status,
	}, statusID)
	if err != nil {
		return apperrors.Wrap(err, "update technology")
	}
	return c.JSON(nethttp.StatusOK, tech)
}

// DeleteTechnology removes a technology.
func (h *TechnologyHandler) DeleteTechnology(c echo.Context) error {
	id, err := pathID(c, "tech_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	exists, err := h.technologies.Exists(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "get technology")
	}
	if !exists {
		return apperrors.NotFoundf("Technology with id=%d not found", id)
	}

	if err := h.technologies.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete technology")
	}
	return c.NoContent(nethttp.StatusNoContent)
}

// ListCategories returns all categories ordered by name.
func (h *TechnologyHandler) ListCategories(c echo.Context) error {
	items, err := h.technologies.ListCategories(c.Request().Context())
	if err != nil {
		return apperrors.Wrap(err, "list categories")
	}
	if items == nil {
		items = []entity.TechnologyCategory{}
	}
	return c.JSON(nethttp.StatusOK, items)
}

// CreateCategory creates a category. Names are unique.
func (h *TechnologyHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.technologies.GetCategoryByName(ctx, req.Name)
	if err != nil {
		return apperrors.Wrap(err, "check category name")
	}
	if existing != nil {
		return apperrors.Conflictf("Category with name %q already exists", req.Name)
	}

	category, err := h.technologies.CreateCategory(ctx, entity.TechnologyCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return apperrors.Wrap(err, "create category")
	}
	return c.JSON(nethttp.StatusCreated, category)
}

// ListStatuses returns all status names ordered alphabetically.
func (h *TechnologyHandler) ListStatuses(c echo.Context) error {
	items, err := h.technologies.ListStatuses(c.Request().Context())
	if err != nil {
		return apperrors.Wrap(err, "list statuses")
	}
	if items == nil {
		items = []string{}
	}
	return c.JSON(nethttp.StatusOK, items)
}

// CreateStatus creates a status by name. Names are unique.
func (h *TechnologyHandler) CreateStatus(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return apperrors.Validationf("Status name is required")
	}

	ctx := c.Request().Context()
	existing, err := h.technologies.GetStatusByName(ctx, name)
	if err != nil {
		return apperrors.Wrap(err, "check status name")
	}
	if existing != nil {
		return apperrors.Conflictf("Status %q already exists", name)
	}

	if err := h.technologies.CreateStatus(ctx, name); err != nil {
		return apperrors.Wrap(err, "create status")
	}
	return c.JSON(nethttp.StatusCreated, echo.Map{"message": "Status created"})
}

// GetStats returns the technology usage statistics.
func (h *TechnologyHandler) GetStats(c echo.Context) error {
	items, summary, err := h.technologies.Stats(c.Request().Context())
	if err != nil {
		return apperrors.Wrap(err, "get technology stats")
	}
	if items == nil {
		items = []entity.TechnologyStats{}
	}
	return c.JSON(nethttp.StatusOK, StatsResponse{Technologies: items, Summary: summary})
}
