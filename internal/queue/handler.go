package queue

import (
	"context"
	"encoding/json"

	"github.com/docsight/docsight/internal/jobs"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MarkJobFailedForDeadLetter records the failure on the job row when a
// message has exhausted its retries and is being dead-lettered. The job
// would otherwise stay in processing forever.
func MarkJobFailedForDeadLetter(
	ctx context.Context,
	conn *pgxpool.Pool,
	msgBody []byte,
) {
	var data AnalyzeJobMsg
	if err := json.Unmarshal(msgBody, &data); err != nil {
		return
	}
	if data.JobID == "" {
		return
	}

	store := jobs.NewStore(conn)
	_ = store.MarkFailed(ctx, data.JobID, "Analysis failed after repeated retries")
}
