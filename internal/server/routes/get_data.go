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

// GetDataHandler hands out a short-lived download link for the entity
// JSONL of a completed job.
func GetDataHandler(c echo.Context) error {
	type getDataResponse struct {
		Message string `json:"message,omitempty"`
		URL     string `json:"url,omitempty"`
	}

	jobID := c.Param("job_id")
	if jobID == "" {
		return c.JSON(http.StatusBadRequest, getDataResponse{Message: "Missing job ID"})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	store := jobs.NewStore(app.DBConn)
	job, err := store.Get(ctx, jobID)
	if errors.Is(err, jobs.ErrNotFound) {
		return c.JSON(http.StatusNotFound, getDataResponse{Message: "Job not found"})
	}
	if err != nil {
		logger.Error("Failed to load job", "job_id", jobID, "err", err)
		return c.JSON(http.StatusInternalServerError, getDataResponse{Message: "Internal server error"})
	}

	if job.Status != jobs.StatusCompleted {
		return c.JSON(http.StatusNotFound, getDataResponse{Message: "Data not available"})
	}

	url, err := storage.GenerateDownloadLink(ctx, app.S3, storage.DataKey(jobID))
	if err != nil {
		logger.Error("Failed to generate download link", "job_id", jobID, "err", err)
		return c.JSON(http.StatusInternalServerError, getDataResponse{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, getDataResponse{URL: url})
}
