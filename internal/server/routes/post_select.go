package routes

import (
	"net/http"

	"github.com/doublelucky/compass/internal/server/middleware"
	"github.com/doublelucky/compass/pkg/graph"
	"github.com/doublelucky/compass/pkg/session"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// SelectNodeHandler handles a node click. Clicking a non-center node
// re-centers the session and starts a fetch; clicking the center returns
// its detail payload without fetching.
func SelectNodeHandler(c echo.Context) error {
	type selectBody struct {
		Name string `json:"name" validate:"required"`
	}

	type selectResponse struct {
		Message   string                `json:"message,omitempty"`
		Snapshot  *session.Snapshot     `json:"snapshot,omitempty"`
		Selection *graph.DisplayPayload `json:"selection,omitempty"`
	}

	data := new(selectBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, selectResponse{
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, selectResponse{
			Message: "Invalid request body",
		})
	}

	manager := c.(*middleware.AppContext).App.Session
	snap, payload := manager.SelectNode(graph.NodeName(data.Name))

	return c.JSON(http.StatusOK, selectResponse{
		Snapshot:  &snap,
		Selection: payload,
	})
}
