// Package http contains the Echo request handlers for the REST API.
package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Sadisms/stack-radar/internal/domain/entity"
	apperrors "github.com/Sadisms/stack-radar/pkg/errors"
)

// bindListParams binds and normalizes the shared list query parameters.
func bindListParams(c echo.Context) (entity.ListParams, error) {
	var params entity.ListParams
	if err := c.Bind(&params); err != nil {
		return params, apperrors.Validationf("Invalid query parameters")
	}
	params.Normalize()
	return params, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.Validationf("Invalid %s", name)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter with a default.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Validationf("Invalid %s", name)
	}
	return value, nil
}

// queryBool parses an optional boolean query parameter; nil means absent.
func queryBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.Validationf("Invalid %s", name)
	}
	return &value, nil
}
