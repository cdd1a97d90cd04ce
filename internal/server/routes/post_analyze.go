package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/docsight/docsight/internal/jobs"
	"github.com/docsight/docsight/internal/queue"
	"github.com/docsight/docsight/internal/server/middleware"
	"github.com/docsight/docsight/internal/storage"
	"github.com/docsight/docsight/internal/util"
	"github.com/docsight/docsight/pkg/logger"
	"github.com/docsight/docsight/pkg/parser"

	"github.com/labstack/echo/v4"
)

const defaultMaxFileSizeMB = 10

// AnalyzeDocumentHandler accepts one document upload (multipart field
// "file"), stores it, creates a pending job, and enqueues it for the
// worker. Analysis runs asynchronously; poll the job endpoint for
// progress.
func AnalyzeDocumentHandler(c echo.Context) error {
	type analyzeResponse struct {
		Message   string `json:"message"`
		JobID     string `json:"job_id,omitempty"`
		Filename  string `json:"filename,omitempty"`
		Status    string `json:"status,omitempty"`
		JobURL    string `json:"job_url,omitempty"`
		ReportURL string `json:"report_url,omitempty"`
		DataURL   string `json:"data_url,omitempty"`
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "No file provided",
		})
	}

	if !parser.IsSupported(file.Filename) {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: fmt.Sprintf(
				"Unsupported file type. Supported types: %s",
				strings.Join(parser.SupportedExtensions, ", "),
			),
		})
	}

	maxSizeMB := int64(util.GetEnvNumeric("MAX_FILE_SIZE_MB", defaultMaxFileSizeMB))
	if file.Size > maxSizeMB*1024*1024 {
		return c.JSON(http.StatusRequestEntityTooLarge, analyzeResponse{
			Message: fmt.Sprintf("File too large. Maximum size is %dMB", maxSizeMB),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, analyzeResponse{
			Message: "Could not open file",
		})
	}
	defer src.Close()

	jobID, err := util.NewJobID()
	if err != nil {
		logger.Error("Failed to generate job ID", "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	if err := storage.PutFile(ctx, app.S3, storage.UploadKey(jobID, file.Filename), src); err != nil {
		logger.Error("Failed to upload file", "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message: "Internal server error",
		})
	}

	store := jobs.NewStore(app.DBConn)
	job, err := store.Create(ctx, jobID, file.Filename)
	if err != nil {
		logger.Error("Failed to create job", "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message: "Internal server error",
		})
	}

	msg, err := json.Marshal(queue.AnalyzeJobMsg{
		JobID:    job.JobID,
		Filename: job.Filename,
	})
	if err != nil {
		logger.Error("Failed to marshal queue message", "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message: "Internal server error",
		})
	}
	if err := queue.PublishFIFO(app.Queue, queue.AnalyzeQueue, msg); err != nil {
		logger.Error("Failed to publish to analyze_queue", "err", err)
		return c.JSON(http.StatusInternalServerError, analyzeResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, analyzeResponse{
		Message:   "Document accepted for analysis",
		JobID:     job.JobID,
		Filename:  job.Filename,
		Status:    string(job.Status),
		JobURL:    fmt.Sprintf("/api/v1/jobs/%s", job.JobID),
		ReportURL: fmt.Sprintf("/api/v1/report/%s", job.JobID),
		DataURL:   fmt.Sprintf("/api/v1/data/%s", job.JobID),
	})
}
