package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/docsight/docsight/internal/jobs"
	"github.com/docsight/docsight/internal/storage"
	"github.com/docsight/docsight/internal/util"
	"github.com/docsight/docsight/pkg/ai"
	"github.com/docsight/docsight/pkg/common"
	"github.com/docsight/docsight/pkg/insight"
	"github.com/docsight/docsight/pkg/logger"
	"github.com/docsight/docsight/pkg/parser"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProcessAnalyzeMessage runs the full analysis pipeline for one job:
// fetch the upload, parse it to text, classify the document, extract
// entities over the truncated text, deduplicate, synthesize the report,
// and persist the artifacts. A returned error means the message should
// be retried; unrecoverable document problems mark the job failed and
// return nil so the message is acked.
func ProcessAnalyzeMessage(
	ctx context.Context,
	client *awss3.Client,
	aiClient ai.DocAIClient,
	conn *pgxpool.Pool,
	docParser *parser.DocumentParser,
	registry *insight.Registry,
	msgBody string,
) error {
	var data AnalyzeJobMsg
	if err := json.Unmarshal([]byte(msgBody), &data); err != nil {
		return fmt.Errorf("failed to unmarshal analyze message: %w", err)
	}
	if data.JobID == "" {
		return fmt.Errorf("analyze message is missing job_id")
	}

	store := jobs.NewStore(conn)

	if err := store.SetStep(ctx, data.JobID, jobs.StepParsing); err != nil {
		return err
	}

	upload, err := storage.GetFile(ctx, client, storage.UploadKey(data.JobID, data.Filename))
	if err != nil {
		return fmt.Errorf("failed to fetch upload for job %s: %w", data.JobID, err)
	}

	text, err := docParser.Parse(ctx, data.JobID, data.Filename, upload)
	if err != nil {
		return failJob(ctx, store, data.JobID, fmt.Sprintf("Failed to parse document: %v", err))
	}

	if len(strings.TrimSpace(text)) < parser.MinTextLength {
		return failJob(ctx, store, data.JobID, "Document appears to be empty or too short to analyze")
	}

	if err := store.SetStep(ctx, data.JobID, jobs.StepClassifying); err != nil {
		return err
	}
	classification := ai.ClassifyDocument(ctx, aiClient, text)
	logger.Info(
		"[Analyze] Classified document",
		"job_id", data.JobID,
		"document_type", classification.DocumentType,
		"confidence", classification.Confidence,
	)

	if err := store.SetStep(ctx, data.JobID, jobs.StepExtracting); err != nil {
		return err
	}
	excerpt := insight.Truncate(text, insight.DefaultTruncateThreshold, insight.DefaultTruncateTarget)
	schema := registry.Lookup(classification.DocumentType)

	retries := int(util.GetEnvNumeric("AI_RETRIES", 3))
	entities, err := util.RetryWithContext(ctx, retries, func(ctx context.Context) ([]common.Entity, error) {
		return ai.ExtractEntities(ctx, aiClient, excerpt, classification.DocumentType, schema.ExpectedClasses)
	})
	if err != nil {
		return fmt.Errorf("failed to extract entities for job %s: %w", data.JobID, err)
	}

	if err := store.SetStep(ctx, data.JobID, jobs.StepSynthesizing); err != nil {
		return err
	}
	merged := insight.Deduplicate(entities)
	report := insight.NewSynthesizer(registry).Synthesize(merged, classification)

	if err := persistArtifacts(ctx, client, data.JobID, report, merged); err != nil {
		return err
	}

	summary := buildSummary(classification.DocumentType, merged)
	if err := store.MarkCompleted(
		ctx,
		data.JobID,
		string(classification.DocumentType),
		classification.Confidence,
		summary,
		len(merged),
	); err != nil {
		return err
	}

	logger.Info("[Analyze] Job completed", "job_id", data.JobID, "entities", len(merged))
	return nil
}

// failJob records a permanent failure on the job and swallows the
// pipeline error so the message is not retried.
func failJob(ctx context.Context, store *jobs.Store, jobID string, message string) error {
	logger.Warn("[Analyze] Job failed permanently", "job_id", jobID, "reason", message)
	if err := store.MarkFailed(ctx, jobID, message); err != nil {
		return err
	}
	return nil
}

// persistArtifacts writes the report JSON and the entity JSONL next to
// the upload in object storage.
func persistArtifacts(
	ctx context.Context,
	client *awss3.Client,
	jobID string,
	report common.Report,
	entities []common.Entity,
) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := storage.PutFile(ctx, client, storage.ReportKey(jobID), bytes.NewReader(reportJSON)); err != nil {
		return err
	}

	var lines bytes.Buffer
	encoder := json.NewEncoder(&lines)
	for _, entity := range entities {
		if err := encoder.Encode(entity); err != nil {
			return fmt.Errorf("failed to encode entity line: %w", err)
		}
	}
	if err := storage.PutFile(ctx, client, storage.DataKey(jobID), &lines); err != nil {
		return err
	}

	return nil
}

// buildSummary renders the one-line job summary from the merged
// entities, listing class counts from most to least frequent.
func buildSummary(docType common.DocumentType, entities []common.Entity) string {
	if len(entities) == 0 {
		return insight.NoInsightsMessage
	}

	counts := make(map[string]int)
	var order []string
	for _, entity := range entities {
		if _, seen := counts[entity.Class]; !seen {
			order = append(order, entity.Class)
		}
		counts[entity.Class]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	parts := make([]string, 0, len(order))
	for _, class := range order {
		parts = append(parts, fmt.Sprintf("• %d %s(s)", counts[class], class))
	}

	return fmt.Sprintf(
		"Analyzed as %s document. Extracted %d entities: %s",
		strings.ToUpper(string(docType)),
		len(entities),
		strings.Join(parts, " "),
	)
}
