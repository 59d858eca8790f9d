package routes

import (
	"net/http"

	"github.com/doublelucky/compass/internal/server/middleware"
	"github.com/doublelucky/compass/pkg/session"

	"github.com/labstack/echo/v4"
)

// ClearSessionHandler resets the session to idle at its default focus.
// Honored immediately even while a fetch is in flight.
func ClearSessionHandler(c echo.Context) error {
	type clearResponse struct {
		Snapshot *session.Snapshot `json:"snapshot"`
	}

	manager := c.(*middleware.AppContext).App.Session
	snap := manager.Clear()

	return c.JSON(http.StatusOK, clearResponse{
		Snapshot: &snap,
	})
}
