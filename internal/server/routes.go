package server

import (
	"github.com/docsight/docsight/internal/server/middleware"
	"github.com/docsight/docsight/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api/v1", middleware.AuthMiddleware)

	// Document analysis routes
	apiRoutes.POST("/analyze", routes.AnalyzeDocumentHandler, middleware.RequirePermission("document.analyze"))
	apiRoutes.GET("/jobs/:job_id", routes.GetJobHandler, middleware.RequirePermission("document.view"))
	apiRoutes.DELETE("/jobs/:job_id", routes.DeleteJobHandler, middleware.RequirePermission("document.analyze"))
	apiRoutes.GET("/report/:job_id", routes.GetReportHandler, middleware.RequirePermission("document.view"))
	apiRoutes.GET("/data/:job_id", routes.GetDataHandler, middleware.RequirePermission("document.view"))
}
