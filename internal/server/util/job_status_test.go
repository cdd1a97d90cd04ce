package util

import (
	"testing"

	"github.com/docsight/docsight/internal/jobs"
)

func TestJobStatusDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status jobs.Status
		step   string
		want   string
	}{
		{
			name:   "pending_has_no_step",
			status: jobs.StatusPending,
			step:   "",
			want:   "pending",
		},
		{
			name:   "processing_includes_step",
			status: jobs.StatusProcessing,
			step:   jobs.StepExtracting,
			want:   "processing (extracting)",
		},
		{
			name:   "processing_without_step_is_bare",
			status: jobs.StatusProcessing,
			step:   "",
			want:   "processing",
		},
		{
			name:   "completed_ignores_stale_step",
			status: jobs.StatusCompleted,
			step:   jobs.StepSynthesizing,
			want:   "completed",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := JobStatusDisplay(tc.status, tc.step)
			if got != tc.want {
				t.Fatalf("JobStatusDisplay(%q, %q) = %q, want %q", tc.status, tc.step, got, tc.want)
			}
		})
	}
}
