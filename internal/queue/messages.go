package queue

// AnalyzeJobMsg asks the worker to analyze one uploaded document. The
// upload itself lives in object storage under the job's key prefix.
type AnalyzeJobMsg struct {
	JobID    string `json:"job_id"`
	Filename string `json:"filename"`
}
