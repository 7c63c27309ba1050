package jobs

import "fmt"

// Status is the lifecycle state a job reports from its status endpoint.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether the status ends the polling loop.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// valid reports whether s is one of the known lifecycle states.
func (s Status) valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// JobState is one observation of a job from its status endpoint.
type JobState struct {
	Status       Status  `json:"status"`
	Progress     float64 `json:"progress"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

func (s *JobState) validate() error {
	if !s.Status.valid() {
		return fmt.Errorf("unknown job status %q", string(s.Status))
	}
	return nil
}
