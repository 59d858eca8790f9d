package routes

import (
	"net/http"

	"github.com/doublelucky/compass/pkg/common"
	"github.com/doublelucky/compass/pkg/links"

	"github.com/labstack/echo/v4"
)

// GetLinksHandler returns the outbound research links for a node name.
// The optional mode parameter switches the job search for a resource
// search in care journey mode.
func GetLinksHandler(c echo.Context) error {
	type linksResponse struct {
		Message string          `json:"message,omitempty"`
		Links   *links.NodeLinks `json:"links,omitempty"`
	}

	name := c.QueryParam("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, linksResponse{
			Message: "Missing name parameter",
		})
	}

	mode := common.QueryMode(c.QueryParam("mode"))
	if mode == "" {
		mode = common.ModeDiscovery
	}

	l := links.ForNode(name, mode)
	return c.JSON(http.StatusOK, linksResponse{
		Links: &l,
	})
}
