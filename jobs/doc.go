// Package jobs implements the trigger-and-poll pattern for asynchronous
// server-side work: start a job, receive its id, then query a status
// endpoint on an interval until the job reaches a terminal state, a poll
// ceiling is hit, or a wall-clock timeout elapses.
//
// Polling is schedule-after-completion: the next tick is armed only once
// the previous status request has returned, so a slow response never
// stacks concurrent polls. Transient status-request failures are logged
// and absorbed — only successful non-terminal reads count toward the poll
// ceiling.
//
// Each polling operation owns its own Session; two jobs polled
// back-to-back share no state and every exit path stops the timers.
//
//	poller := jobs.NewPoller(client.StatusFunc(statusPath))
//	res, err := poller.Poll(ctx, jobID, jobs.Options{})
package jobs
