package routes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/docsight/docsight/internal/jobs"
	"github.com/docsight/docsight/internal/server/middleware"
	serverutil "github.com/docsight/docsight/internal/server/util"
	"github.com/docsight/docsight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GetJobHandler reports the lifecycle state of an analysis job. For
// completed jobs it carries the classification outcome and links to the
// generated artifacts.
func GetJobHandler(c echo.Context) error {
	type getJobResponse struct {
		Message         string     `json:"message,omitempty"`
		JobID           string     `json:"job_id,omitempty"`
		Filename        string     `json:"filename,omitempty"`
		Status          string     `json:"status,omitempty"`
		Error           string     `json:"error,omitempty"`
		DocumentType    string     `json:"document_type,omitempty"`
		Confidence      float64    `json:"confidence,omitempty"`
		Summary         string     `json:"summary,omitempty"`
		ExtractionCount int        `json:"extraction_count,omitempty"`
		CreatedAt       *time.Time `json:"created_at,omitempty"`
		CompletedAt     *time.Time `json:"completed_at,omitempty"`
		ReportURL       string     `json:"report_url,omitempty"`
		DataURL         string     `json:"data_url,omitempty"`
	}

	jobID := c.Param("job_id")
	if jobID == "" {
		return c.JSON(http.StatusBadRequest, getJobResponse{
			Message: "Missing job ID",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	store := jobs.NewStore(app.DBConn)
	job, err := store.Get(ctx, jobID)
	if errors.Is(err, jobs.ErrNotFound) {
		return c.JSON(http.StatusNotFound, getJobResponse{
			Message: "Job not found",
		})
	}
	if err != nil {
		logger.Error("Failed to load job", "job_id", jobID, "err", err)
		return c.JSON(http.StatusInternalServerError, getJobResponse{
			Message: "Internal server error",
		})
	}

	resp := getJobResponse{
		JobID:     job.JobID,
		Filename:  job.Filename,
		Status:    serverutil.JobStatusDisplay(job.Status, job.Step),
		Error:     job.Error,
		CreatedAt: &job.CreatedAt,
	}

	if job.Status == jobs.StatusCompleted {
		resp.DocumentType = job.DocumentType
		resp.Confidence = job.Confidence
		resp.Summary = job.Summary
		resp.ExtractionCount = job.ExtractionCount
		resp.CompletedAt = job.CompletedAt
		resp.ReportURL = fmt.Sprintf("/api/v1/report/%s", job.JobID)
		resp.DataURL = fmt.Sprintf("/api/v1/data/%s", job.JobID)
	}

	return c.JSON(http.StatusOK, resp)
}
