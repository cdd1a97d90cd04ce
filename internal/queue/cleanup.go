package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/docsight/docsight/internal/jobs"
	"github.com/docsight/docsight/internal/storage"
	"github.com/docsight/docsight/internal/util"
	"github.com/docsight/docsight/pkg/logger"
	"github.com/docsight/docsight/pkg/parser"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CleanupExpiredJobs deletes jobs older than the retention window along
// with their stored artifacts and cached parse results. The window is
// CLEANUP_HOURS, defaulting to 24.
func CleanupExpiredJobs(
	ctx context.Context,
	client *awss3.Client,
	conn *pgxpool.Pool,
	docParser *parser.DocumentParser,
) error {
	retention := time.Duration(util.GetEnvNumeric("CLEANUP_HOURS", 24)) * time.Hour
	cutoff := time.Now().Add(-retention)

	store := jobs.NewStore(conn)
	expired, err := store.ListOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		logger.Debug("[Cleanup] No expired jobs")
		return nil
	}

	logger.Info("[Cleanup] Removing expired jobs", "count", len(expired))

	var failed int
	for _, job := range expired {
		if err := storage.DeleteFolder(ctx, client, storage.JobPrefix(job.JobID)); err != nil {
			logger.Error("[Cleanup] Failed to delete job artifacts", "job_id", job.JobID, "err", err)
			failed++
			continue
		}
		if err := store.Delete(ctx, job.JobID); err != nil {
			logger.Error("[Cleanup] Failed to delete job row", "job_id", job.JobID, "err", err)
			failed++
			continue
		}
		docParser.Forget(job.JobID)
	}

	if failed > 0 {
		return fmt.Errorf("failed to clean up %d of %d expired jobs", failed, len(expired))
	}
	return nil
}
