package util

import "github.com/docsight/docsight/internal/jobs"

// JobStatusDisplay renders the API-facing status string for a job. A
// processing job carries its current pipeline step so clients can show
// progress.
func JobStatusDisplay(status jobs.Status, step string) string {
	if status == jobs.StatusProcessing && step != "" {
		return string(status) + " (" + step + ")"
	}
	return string(status)
}
