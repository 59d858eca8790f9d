package routes

import (
	"net/http"

	"github.com/doublelucky/compass/internal/server/middleware"
	"github.com/doublelucky/compass/pkg/graph"

	"github.com/labstack/echo/v4"
)

// GetSelectionHandler resolves the detail payload for a node of the
// current graph. An unknown name yields a not_found payload, not an
// error status.
func GetSelectionHandler(c echo.Context) error {
	type selectionResponse struct {
		Message   string                `json:"message,omitempty"`
		Selection *graph.DisplayPayload `json:"selection,omitempty"`
	}

	name := c.QueryParam("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, selectionResponse{
			Message: "Missing name parameter",
		})
	}

	manager := c.(*middleware.AppContext).App.Session
	payload := manager.Selection(graph.NodeName(name))

	return c.JSON(http.StatusOK, selectionResponse{
		Selection: &payload,
	})
}
