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

// DeleteJobHandler removes a job and its stored artifacts ahead of the
// retention cleanup.
func DeleteJobHandler(c echo.Context) error {
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

	if err := storage.DeleteFolder(ctx, app.S3, storage.JobPrefix(job.JobID)); err != nil {
		logger.Error("Failed to delete job artifacts", "job_id", jobID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
	if err := store.Delete(ctx, job.JobID); err != nil {
		logger.Error("Failed to delete job", "job_id", jobID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Job deleted"})
}
