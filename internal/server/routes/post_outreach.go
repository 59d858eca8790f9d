package routes

import (
	"errors"
	"net/http"

	"github.com/doublelucky/compass/internal/server/middleware"
	"github.com/doublelucky/compass/pkg/common"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// DraftOutreachHandler generates a short cold-outreach email for a
// company of the current graph. This call blocks on the model.
func DraftOutreachHandler(c echo.Context) error {
	type outreachBody struct {
		Company string `json:"company" validate:"required"`
		Summary string `json:"summary"`
		Resume  string `json:"resume"`
	}

	type outreachResponse struct {
		Message string `json:"message,omitempty"`
		Draft   string `json:"draft,omitempty"`
	}

	data := new(outreachBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, outreachResponse{
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, outreachResponse{
			Message: "Invalid request body",
		})
	}

	analyzer := c.(*middleware.AppContext).App.Analyzer

	draft, err := analyzer.DraftOutreach(c.Request().Context(), data.Company, data.Summary, data.Resume)
	if err != nil {
		return c.JSON(statusForError(err), outreachResponse{
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, outreachResponse{
		Draft: draft,
	})
}

// statusForError maps the analysis error kinds onto HTTP statuses:
// invalid input 400, malformed model reply 422, transport failure 502.
func statusForError(err error) int {
	var me *common.MalformedResponseError
	var se *common.ServiceError

	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &me):
		return http.StatusUnprocessableEntity
	case errors.As(err, &se):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
