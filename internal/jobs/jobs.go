// Package jobs persists analysis job state in Postgres. The job row
// tracks lifecycle status and the summary fields surfaced by the jobs
// API; the heavyweight artifacts (report JSON, entity JSONL) live in
// object storage.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Status is the lifecycle state of an analysis job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Pipeline steps reported while a job is processing.
const (
	StepParsing      = "parsing"
	StepClassifying  = "classifying"
	StepExtracting   = "extracting"
	StepSynthesizing = "synthesizing"
)

// ErrNotFound is returned when no job exists for the given public ID.
var ErrNotFound = errors.New("job not found")

// Job is one analysis job row.
type Job struct {
	ID              int64
	JobID           string
	Filename        string
	Status          Status
	Step            string
	Error           string
	DocumentType    string
	Confidence      float64
	Summary         string
	ExtractionCount int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

// Store reads and writes analysis job rows.
type Store struct {
	conn *pgxpool.Pool
}

// NewStore creates a Store over the given connection pool.
func NewStore(conn *pgxpool.Pool) *Store {
	return &Store{conn: conn}
}

const jobColumns = `
	id, job_id, filename, status, step, error,
	document_type, confidence, summary, extraction_count,
	created_at, updated_at, completed_at
`

func scanJob(row pgx.Row) (Job, error) {
	var job Job
	err := row.Scan(
		&job.ID,
		&job.JobID,
		&job.Filename,
		&job.Status,
		&job.Step,
		&job.Error,
		&job.DocumentType,
		&job.Confidence,
		&job.Summary,
		&job.ExtractionCount,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)
	return job, err
}

// Create inserts a new pending job.
func (s *Store) Create(ctx context.Context, jobID string, filename string) (Job, error) {
	row := s.conn.QueryRow(ctx, `
		INSERT INTO analysis_jobs (job_id, filename)
		VALUES ($1, $2)
		RETURNING`+jobColumns,
		jobID, filename,
	)

	job, err := scanJob(row)
	if err != nil {
		return Job{}, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// Get returns the job with the given public ID.
func (s *Store) Get(ctx context.Context, jobID string) (Job, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT`+jobColumns+`
		FROM analysis_jobs
		WHERE job_id = $1`,
		jobID,
	)

	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// SetStep marks the job as processing and records the current pipeline
// step.
func (s *Store) SetStep(ctx context.Context, jobID string, step string) error {
	_, err := s.conn.Exec(ctx, `
		UPDATE analysis_jobs
		SET status = $2, step = $3, updated_at = now()
		WHERE job_id = $1`,
		jobID, StatusProcessing, step,
	)
	if err != nil {
		return fmt.Errorf("failed to set job step: %w", err)
	}
	return nil
}

// MarkCompleted stores the analysis outcome and finishes the job.
func (s *Store) MarkCompleted(
	ctx context.Context,
	jobID string,
	documentType string,
	confidence float64,
	summary string,
	extractionCount int,
) error {
	_, err := s.conn.Exec(ctx, `
		UPDATE analysis_jobs
		SET status = $2, step = '',
			document_type = $3, confidence = $4,
			summary = $5, extraction_count = $6,
			updated_at = now(), completed_at = now()
		WHERE job_id = $1`,
		jobID, StatusCompleted, documentType, confidence, summary, extractionCount,
	)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	return nil
}

// MarkFailed finishes the job with an error message.
func (s *Store) MarkFailed(ctx context.Context, jobID string, message string) error {
	_, err := s.conn.Exec(ctx, `
		UPDATE analysis_jobs
		SET status = $2, step = '', error = $3,
			updated_at = now(), completed_at = now()
		WHERE job_id = $1`,
		jobID, StatusFailed, message,
	)
	if err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}
	return nil
}

// ListOlderThan returns jobs created before the cutoff, used by
// retention cleanup.
func (s *Store) ListOlderThan(ctx context.Context, cutoff time.Time) ([]Job, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT`+jobColumns+`
		FROM analysis_jobs
		WHERE created_at < $1
		ORDER BY created_at`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired jobs: %w", err)
	}
	defer rows.Close()

	var expired []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		expired = append(expired, job)
	}
	return expired, rows.Err()
}

// Delete removes a job row.
func (s *Store) Delete(ctx context.Context, jobID string) error {
	_, err := s.conn.Exec(ctx, `DELETE FROM analysis_jobs WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}
