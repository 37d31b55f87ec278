package pipeline

import (
	"fmt"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/contracts"
)

// Result is the typed outcome threaded between stages; it replaces any
// implicit shared build-state.
type Result struct {
	Status      contracts.Status
	FailedStage string
	Reason      string
}

// SuccessResult returns the outcome of a run with all stages passed
func SuccessResult() Result {
	return Result{
		Status: contracts.StatusSuccess,
	}
}

// FailureResult returns the outcome of a run aborted by the named stage
func FailureResult(stage string, err error) Result {
	return Result{
		Status:      contracts.StatusFailure,
		FailedStage: stage,
		Reason:      err.Error(),
	}
}

// Succeeded gates the stages that require the full prior chain to have passed
func (r Result) Succeeded() bool {
	return r.Status == contracts.StatusSuccess
}

// ErrorMessage returns the message carried in the build report; empty for a
// successful run
func (r Result) ErrorMessage() string {
	if r.Succeeded() {
		return ""
	}

	return fmt.Sprintf("stage %v failed: %v", r.FailedStage, r.Reason)
}
