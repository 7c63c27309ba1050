package jobs

import (
	"encoding/json"
	"time"

	"github.com/inkforge/novelkit/errors"
)

// Outcome classifies how a polling operation ended.
type Outcome int

const (
	// OutcomeCompleted means the job reached the completed status.
	OutcomeCompleted Outcome = iota
	// OutcomeFailed means the job reached the failed status.
	OutcomeFailed
	// OutcomeTimedOut means polling gave up before the job finished,
	// either by poll count or by wall clock. The job itself may still
	// be running server-side.
	OutcomeTimedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// TimeoutCause says which limit ended a timed-out operation.
type TimeoutCause string

const (
	TimeoutByPolls TimeoutCause = "max_polls"
	TimeoutByClock TimeoutCause = "deadline"
)

// Result is the terminal report of one polling operation.
type Result struct {
	JobID   string
	Outcome Outcome
	// Polls counts successful status reads, terminal read included.
	Polls int
	// Progress is the last progress value observed.
	Progress float64
	// ErrorMessage carries the server's failure reason when the job
	// failed. Always non-empty for OutcomeFailed.
	ErrorMessage string
	// TimedOutBy is set only for OutcomeTimedOut.
	TimedOutBy TimeoutCause
	Elapsed    time.Duration
	// Final holds the refetched job payload after completion, when a
	// refetch function was configured and succeeded.
	Final json.RawMessage
	// RefetchErr records a failed refetch. The outcome stays
	// OutcomeCompleted; the caller decides whether the payload matters.
	RefetchErr error
}

// Err maps a non-completed outcome to an application error, or nil for
// a completed job.
func (r *Result) Err() error {
	switch r.Outcome {
	case OutcomeFailed:
		return errors.JobFailed(r.JobID, r.ErrorMessage)
	case OutcomeTimedOut:
		return errors.JobTimeout(r.JobID, r.Polls)
	default:
		return nil
	}
}
