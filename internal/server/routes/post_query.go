package routes

import (
	"net/http"

	"github.com/doublelucky/compass/internal/server/middleware"
	"github.com/doublelucky/compass/pkg/common"
	"github.com/doublelucky/compass/pkg/session"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// QuerySessionHandler sets a new focus and starts an analysis fetch. The
// fetch runs on the session manager's own goroutine; the response is the
// snapshot right after the transition, typically in the fetching phase.
func QuerySessionHandler(c echo.Context) error {
	type queryBody struct {
		Focus   string           `json:"focus" validate:"required"`
		Mode    common.QueryMode `json:"mode" validate:"omitempty,oneof=discovery resume_match care_journey"`
		Filters common.FilterSet `json:"filters"`
	}

	type queryResponse struct {
		Message  string            `json:"message,omitempty"`
		Snapshot *session.Snapshot `json:"snapshot,omitempty"`
	}

	data := new(queryBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Invalid request body",
		})
	}

	if data.Mode == "" {
		data.Mode = common.ModeDiscovery
	}

	filters, ok := data.Filters.Normalize()
	if !ok {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Unknown filter label",
		})
	}

	manager := c.(*middleware.AppContext).App.Session
	snap := manager.SubmitQuery(data.Focus, data.Mode, filters)

	return c.JSON(http.StatusAccepted, queryResponse{
		Snapshot: &snap,
	})
}
