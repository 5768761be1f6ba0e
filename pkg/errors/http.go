package errors

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewEchoErrorHandler returns an Echo error handler that maps application
// errors to structured JSON responses. Typed errors produce their mapped
// status with a {message} body (plus {errors} for validation detail);
// everything else becomes a generic internal error so raw database error
// text is never sent verbatim as a typed failure.
func NewEchoErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := echo.Map{}

		var appErr *AppError
		var echoErr *echo.HTTPError

		switch {
		case As(err, &appErr):
			status = ToHTTPStatus(appErr.Code())
			body["message"] = appErr.Message()
			if fields := appErr.Fields(); len(fields) > 0 {
				body["errors"] = fields
			}
		case As(err, &echoErr):
			status = echoErr.Code
			if msg, ok := echoErr.Message.(string); ok {
				body["message"] = msg
			} else {
				body["message"] = http.StatusText(echoErr.Code)
			}
		default:
			body["message"] = fmt.Sprintf("Internal server error: %s", err.Error())
		}

		if status >= http.StatusInternalServerError {
			LogError(logger, err, "request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}
