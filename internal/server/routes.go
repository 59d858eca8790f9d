package server

import (
	"github.com/doublelucky/compass/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Session routes
	apiRoutes.GET("/session", routes.GetSessionHandler)
	apiRoutes.POST("/session/query", routes.QuerySessionHandler)
	apiRoutes.POST("/session/select", routes.SelectNodeHandler)
	apiRoutes.POST("/session/clear", routes.ClearSessionHandler)
	apiRoutes.GET("/session/selection", routes.GetSelectionHandler)

	// Node helper routes
	apiRoutes.GET("/links", routes.GetLinksHandler)
	apiRoutes.POST("/outreach", routes.DraftOutreachHandler)
}
