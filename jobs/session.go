package jobs

import (
	"context"
	"sync"
)

// Session is a polling operation running in the background. It is
// created by Poller.Start and ends when the job reaches a terminal
// state, a limit is hit, or Cancel is called.
type Session struct {
	cancel context.CancelFunc
	done   chan struct{}

	once     sync.Once
	canceled bool

	mu     sync.Mutex
	result *Result
	err    error
}

// Start runs Poll in a goroutine and reports the terminal result
// through onDone. onDone is not invoked when the session itself is
// canceled; external cancellation of ctx still reports ctx.Err().
func (p *Poller) Start(ctx context.Context, jobID string, opts Options, onDone func(*Result, error)) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer cancel()
		defer close(s.done)

		res, err := p.Poll(ctx, jobID, opts)
		s.mu.Lock()
		s.result, s.err = res, err
		canceled := s.canceled
		s.mu.Unlock()

		if onDone != nil && !canceled {
			onDone(res, err)
		}
	}()
	return s
}

// Cancel stops the session. Safe to call multiple times, and a no-op
// once the session has already finished.
func (s *Session) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		s.canceled = true
		s.mu.Unlock()
		s.cancel()
	})
}

// Done is closed when the session has fully stopped.
func (s *Session) Done() <-chan struct{} { return s.done }

// Wait blocks until the session finishes and returns its terminal
// result. After Cancel it returns the context error.
func (s *Session) Wait() (*Result, error) {
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.err
}
