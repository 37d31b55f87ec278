package contracts

import (
	"time"
)

// Status is the final outcome of a pipeline run
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// BuildReport is the payload sent to the webhook endpoint once per pipeline
// run; it is marshalled with encoding/json so log content with quotes,
// backslashes or newlines can never render the payload unparseable.
type BuildReport struct {
	Status       Status `json:"status"`
	JobName      string `json:"job_name"`
	BuildNumber  string `json:"build_number"`
	Timestamp    string `json:"timestamp"`
	ErrorMessage string `json:"error_message,omitempty"`
	LogExcerpt   string `json:"log_excerpt"`
}

// NewBuildReport returns a report stamped with the current time in UTC
func NewBuildReport(status Status, jobName, buildNumber, errorMessage, logExcerpt string) BuildReport {
	return BuildReport{
		Status:       status,
		JobName:      jobName,
		BuildNumber:  buildNumber,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		ErrorMessage: errorMessage,
		LogExcerpt:   logExcerpt,
	}
}
