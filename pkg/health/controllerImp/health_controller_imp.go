package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Uvais-khan078/village360/pkg/health/controller"
)

var appStart = time.Now()

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthCtrl struct {
	db  pinger
	log *zap.Logger
}

func NewHealthCtrl(db pinger, log *zap.Logger) controller.HealthController {
	return &HealthCtrl{db: db, log: log}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":     "ok",
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"time":       time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) DB(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database ping failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Database connection failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"db": "ok"})
}
