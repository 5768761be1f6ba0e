package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	"github.com/Sadisms/stack-radar/internal/domain/repository"
	"github.com/Sadisms/stack-radar/internal/middleware/auth"
	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
)

const defaultInactiveDays = 180

// AdminHandler serves the project archiving administration endpoints.
type AdminHandler struct {
	logger  *zap.Logger
	archive repository.ArchiveRepository
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(logger *zap.Logger, archive repository.ArchiveRepository) *AdminHandler {
	return &AdminHandler{logger: logger, archive: archive}
}

// PreviewArchive reports which projects would be archived without changing
// anything.
func (h *AdminHandler) PreviewArchive(c echo.Context) error {
	inactiveDays, err := queryInt(c, "inactive_days", defaultInactiveDays)
	if err != nil {
		return err
	}

	candidates, err := h.archive.Preview(c.Request().Context(), inactiveDays)
	if err != nil {
		return apperrors.Wrap(err, "preview archive")
	}
	if candidates == nil {
		candidates = []entity.ArchiveCandidate{}
	}
	return c.JSON(nethttp.StatusOK, echo.Map{
		"count":         len(candidates),
		"inactive_days": inactiveDays,
		"projects":      candidates,
	})
}

// ExecuteArchive archives inactive projects and records the operator.
func (h *AdminHandler) ExecuteArchive(c echo.Context) error {
	inactiveDays, err := queryInt(c, "inactive_days", defaultInactiveDays)
	if err != nil {
		return err
	}
	user := auth.CurrentUser(c)
	if user == nil {
		return apperrors.Unauthenticatedf("Not authenticated")
	}

	archived, err := h.archive.Execute(c.Request().Context(), inactiveDays, user.ID)
	if err != nil {
		return apperrors.Wrap(err, "execute archive")
	}
	if archived == nil {
		archived = []entity.ArchiveCandidate{}
	}

	h.logger.Info("projects archived",
		zap.Int("count", len(archived)),
		zap.Int("inactive_days", inactiveDays),
		zap.Int64("archived_by", user.ID))
	return c.JSON(nethttp.StatusOK, echo.Map{
		"success":           true,
		"count":             len(archived),
		"archived_projects": archived,
	})
}

// ArchiveHistory returns the most recent archive operations.
func (h *AdminHandler) ArchiveHistory(c echo.Context) error {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return err
	}

	history, err := h.archive.History(c.Request().Context(), limit)
	if err != nil {
		return apperrors.Wrap(err, "archive history")
	}
	if history == nil {
		history = []entity.ArchiveLogEntry{}
	}
	return c.JSON(nethttp.StatusOK, echo.Map{"history": history})
}
