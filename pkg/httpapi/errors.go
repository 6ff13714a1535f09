package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/storage"
)

type Message struct {
	Message string `json:"message"`
}

func Error(status int, msg string) error { return echo.NewHTTPError(status, msg) }

// Fail classifies a service or storage error. Anything unrecognised becomes a
// 500 whose detail is only logged.
func Fail(err error) error {
	var (
		ve *entities.ValidationError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &he):
		return he
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, storage.ErrInvalidReference):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, "Record already exists")
	case errors.Is(err, storage.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}
	return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Internal server error", Internal: err}
}

// NotFoundAs is Fail with a resource specific 404 message.
func NotFoundAs(err error, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msg)
	}
	return Fail(err)
}

// ErrorHandler renders every escaped error as {"message": ...}.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		he := Fail(err).(*echo.HTTPError)
		msg := fmt.Sprint(he.Message)
		if he.Code >= http.StatusInternalServerError {
			cause := err
			if he.Internal != nil {
				cause = he.Internal
			}
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", he.Code),
				zap.Error(cause))
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, Message{Message: msg})
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
