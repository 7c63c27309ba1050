package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/inkforge/novelkit/logger"
)

// failedWithoutReason substitutes for a failed job that reported no
// error_message.
const failedWithoutReason = "The task failed without a reported reason."

// StatusFunc fetches the current state of a job.
type StatusFunc func(ctx context.Context, jobID string) (*JobState, error)

// RefetchFunc loads the full job payload after completion. Its failure
// never downgrades a completed outcome.
type RefetchFunc func(ctx context.Context, jobID string) (json.RawMessage, error)

// Poller drives the poll loop for jobs exposed through a status
// function. A single Poller is safe for concurrent use; each Poll call
// carries its own timers and counters.
type Poller struct {
	status  StatusFunc
	refetch RefetchFunc
	log     *logger.Logger
}

// PollerOption customizes a Poller.
type PollerOption func(*Poller)

// WithRefetch sets the function invoked once after a job completes to
// load its full payload.
func WithRefetch(fn RefetchFunc) PollerOption {
	return func(p *Poller) { p.refetch = fn }
}

// WithPollerLogger overrides the logger.
func WithPollerLogger(log *logger.Logger) PollerOption {
	return func(p *Poller) { p.log = log }
}

// NewPoller creates a poller over the given status function.
func NewPoller(status StatusFunc, opts ...PollerOption) *Poller {
	p := &Poller{
		status: status,
		log:    logger.WithComponent("jobs"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll blocks until the job reaches a terminal state, a limit is hit,
// or ctx is done. The returned Result is non-nil exactly when the error
// is nil; context cancellation surfaces as ctx.Err().
//
// The first status request fires after one interval, and each
// subsequent one is scheduled only after the previous request returned.
// A status request that fails transiently is logged and retried on the
// next tick without counting toward MaxPolls.
func (p *Poller) Poll(ctx context.Context, jobID string, opts Options) (*Result, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	log := p.log.WithFields(logger.Fields(logger.FieldJobID, jobID))
	log.Debug("polling started", logger.Fields(
		"interval", opts.Interval.String(),
		"max_polls", opts.MaxPolls,
		"timeout", opts.Timeout.String()))

	start := time.Now()
	tick := time.NewTimer(opts.Interval)
	defer tick.Stop()
	deadline := time.NewTimer(opts.Timeout)
	defer deadline.Stop()

	res := &Result{JobID: jobID}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			res.Outcome = OutcomeTimedOut
			res.TimedOutBy = TimeoutByClock
			res.Elapsed = time.Since(start)
			log.Warn("polling timed out by wall clock", logger.Fields("polls", res.Polls))
			return res, nil
		case <-tick.C:
		}

		state, err := p.status(ctx, jobID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("status poll failed, retrying on next tick",
				logger.Fields(logger.FieldError, err.Error()))
		case state == nil:
			log.Warn("status poll returned no state, retrying on next tick")
		case state.validate() != nil:
			log.Warn("status poll returned unknown state, retrying on next tick",
				logger.Fields(logger.FieldStatus, string(state.Status)))
		default:
			res.Polls++
			res.Progress = state.Progress
			log.Debug("status poll", logger.Fields(
				logger.FieldStatus, string(state.Status),
				logger.FieldProgress, state.Progress,
				"polls", res.Polls))

			switch state.Status {
			case StatusCompleted:
				res.Outcome = OutcomeCompleted
				res.Elapsed = time.Since(start)
				p.runRefetch(ctx, jobID, res, log)
				return res, nil
			case StatusFailed:
				res.Outcome = OutcomeFailed
				res.ErrorMessage = state.ErrorMessage
				if res.ErrorMessage == "" {
					res.ErrorMessage = failedWithoutReason
				}
				res.Elapsed = time.Since(start)
				log.Warn("job failed", logger.Fields(logger.FieldError, res.ErrorMessage))
				return res, nil
			default:
				if res.Polls >= opts.MaxPolls {
					res.Outcome = OutcomeTimedOut
					res.TimedOutBy = TimeoutByPolls
					res.Elapsed = time.Since(start)
					log.Warn("polling gave up after poll ceiling", logger.Fields("polls", res.Polls))
					return res, nil
				}
			}
		}

		tick.Reset(opts.Interval)
	}
}

// runRefetch loads the final payload exactly once after completion. A
// refetch failure is recorded on the result and logged, nothing more.
func (p *Poller) runRefetch(ctx context.Context, jobID string, res *Result, log *logger.Logger) {
	if p.refetch == nil {
		return
	}
	payload, err := p.refetch(ctx, jobID)
	if err != nil {
		res.RefetchErr = err
		log.Warn("final payload refetch failed, job still completed",
			logger.Fields(logger.FieldError, err.Error()))
		return
	}
	res.Final = payload
}
