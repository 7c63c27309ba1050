package jobs

import (
	"fmt"
	"time"
)

const (
	// DefaultInterval is the delay between consecutive status polls.
	DefaultInterval = 2 * time.Second
	// DefaultMaxPolls caps the number of successful non-terminal reads.
	DefaultMaxPolls = 60
	// DefaultTimeout bounds the whole polling operation by wall clock.
	DefaultTimeout = 2 * time.Minute
)

// Options tunes a single polling operation. The zero value polls every
// 2s for up to 60 reads or 2 minutes, whichever comes first.
type Options struct {
	// Interval is the delay between the end of one status request and
	// the start of the next.
	Interval time.Duration
	// MaxPolls caps successful non-terminal status reads. Failed
	// requests do not count.
	MaxPolls int
	// Timeout bounds the operation by wall clock, independent of how
	// many polls actually ran.
	Timeout time.Duration
}

// ApplyDefaults fills unset fields with the package defaults. Negative
// values are left alone for Validate to reject.
func (o *Options) ApplyDefaults() {
	if o.Interval == 0 {
		o.Interval = DefaultInterval
	}
	if o.MaxPolls == 0 {
		o.MaxPolls = DefaultMaxPolls
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
}

// Validate checks the options for internal consistency.
func (o *Options) Validate() error {
	if o.Interval <= 0 {
		return fmt.Errorf("jobs: interval must be positive, got %s", o.Interval)
	}
	if o.MaxPolls <= 0 {
		return fmt.Errorf("jobs: max polls must be positive, got %d", o.MaxPolls)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("jobs: timeout must be positive, got %s", o.Timeout)
	}
	return nil
}
