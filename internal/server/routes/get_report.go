package routes

import (
	"errors"
	"net/http"

	"github.com/docsight/docsight/internal/jobs"
	"github.com/docsight/docsight/internal/server/middleware"
	"github.com/docsight/docsight/internal/storage"
	"github.com/docsight/docsight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GetReportHandler serves the synthesized report JSON of a completed
// job.
func GetReportHandler(c echo.Context) error {
	jobID := c.Param("job_id")
	if jobID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Missing job ID"})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	store := jobs.NewStore(app.DBConn)
	job, err := store.Get(ctx, jobID)
	if errors.Is(err, jobs.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Job not found"})
	}
	if err != nil {
		logger.Error("Failed to load job", "job_id", jobID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	if job.Status != jobs.StatusCompleted {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Report not available"})
	}

	report, err := storage.GetFile(ctx, app.S3, storage.ReportKey(jobID))
	if err != nil {
		logger.Error("Failed to fetch report", "job_id", jobID, "err", err)
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Report not available"})
	}

	return c.JSONBlob(http.StatusOK, report)
}
