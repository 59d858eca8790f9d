package routes

import (
	"net/http"

	"github.com/doublelucky/compass/internal/server/middleware"
	"github.com/doublelucky/compass/internal/util"
	"github.com/doublelucky/compass/pkg/ai"
	"github.com/doublelucky/compass/pkg/session"

	"github.com/labstack/echo/v4"
)

// GetSessionHandler returns the current session snapshot plus the
// accumulated model usage for the session.
//
// An optional focus query parameter runs the re-entry check: when the
// displayed graph's center no longer matches it, the graph is marked
// stale and a fetch for the desired focus starts before responding.
func GetSessionHandler(c echo.Context) error {
	type usageResponse struct {
		ai.ModelMetrics
		EstimatedCostUSD float64 `json:"estimated_cost_usd"`
	}

	type sessionResponse struct {
		Snapshot session.Snapshot `json:"snapshot"`
		Usage    usageResponse    `json:"usage"`
	}

	manager := c.(*middleware.AppContext).App.Session

	var snap session.Snapshot
	if desired := c.QueryParam("focus"); desired != "" {
		snap = manager.SyncFocus(desired)
	} else {
		snap = manager.Snapshot()
	}

	metrics := manager.Usage()
	costRate := util.GetEnvNumeric("AI_COST_PER_MTOK", 2)

	return c.JSON(http.StatusOK, sessionResponse{
		Snapshot: snap,
		Usage: usageResponse{
			ModelMetrics:     metrics,
			EstimatedCostUSD: metrics.EstimatedCostUSD(costRate),
		},
	})
}
