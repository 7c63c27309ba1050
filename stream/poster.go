package stream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	kiterrors "github.com/inkforge/novelkit/errors"
	"github.com/inkforge/novelkit/httpclient"
	"github.com/inkforge/novelkit/logger"
	"github.com/inkforge/novelkit/sse"
)

// Poster issues a POST request whose response body is a stream of event
// frames, and consumes it under the same contract as Reader. One instance
// serves one request.
type Poster struct {
	client  *httpclient.Client
	path    string
	body    any
	cb      Callbacks
	log     *logger.Logger
	headers map[string]string

	mu        sync.Mutex
	cancel    context.CancelFunc
	aborted   bool
	connected bool

	d *dispatcher
}

// PosterOption configures a Poster.
type PosterOption func(*Poster)

// WithPosterLogger overrides the poster's logger.
func WithPosterLogger(log *logger.Logger) PosterOption {
	return func(p *Poster) { p.log = log }
}

// WithPosterHeaders adds request headers, for request ids and the like.
func WithPosterHeaders(headers map[string]string) PosterOption {
	return func(p *Poster) { p.headers = headers }
}

// NewPoster creates a streaming-POST reader. body is JSON-encoded as the
// request payload.
func NewPoster(client *httpclient.Client, path string, body any, cb Callbacks, opts ...PosterOption) *Poster {
	p := &Poster{
		client: client,
		path:   path,
		body:   body,
		cb:     cb,
		log:    logger.WithComponent("stream.poster"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.d = newDispatcher(cb, p.log)
	return p
}

// Connect issues the POST and blocks until the stream terminates,
// returning the settled outcome. A non-2xx response is fatal and is
// returned immediately without retry. A deliberate Abort returns
// ErrAborted without firing any callback.
func (p *Poster) Connect(ctx context.Context) (*Outcome, error) {
	ctx, err := p.arm(ctx)
	if err != nil {
		return nil, err
	}
	defer p.release()

	headers := map[string]string{"Accept": "text/event-stream"}
	for k, v := range p.headers {
		headers[k] = v
	}
	resp, err := p.client.DoStream(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    p.path,
		Body:    p.body,
		Headers: headers,
	})
	if err != nil {
		return nil, p.transportFailed(err)
	}
	defer func() { _ = resp.Close() }()

	// Strictly sequential decode loop: bytes are fed to the frame decoder
	// in read order and every complete frame is dispatched before the next
	// read, so chunk delivery order matches network arrival order.
	dec := sse.NewDecoder()
	buf := make([]byte, 4096)
	terminal := false

	for !terminal {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			for _, ev := range dec.Feed(buf[:n]) {
				if p.d.dispatch(ev.Data) {
					terminal = true
					break
				}
			}
		}
		if rerr != nil {
			if rerr != io.EOF {
				return nil, p.transportFailed(rerr)
			}
			if !terminal {
				if ev, ok := dec.Flush(); ok {
					p.d.dispatch(ev.Data)
				}
			}
			break
		}
	}

	return p.d.settle()
}

// Abort cancels the in-flight request. Idempotent; safe to call even if
// the request already completed, in which case it is a no-op.
func (p *Poster) Abort() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aborted = true
	if p.cancel != nil {
		p.cancel()
	}
}

// Content returns the accumulated chunk text. Valid once Connect has
// returned.
func (p *Poster) Content() string {
	return p.d.content.String()
}

// arm marks the poster connected and installs the cancel hook Abort uses.
func (p *Poster) arm(ctx context.Context) (context.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.aborted {
		return nil, ErrAborted
	}
	if p.connected {
		return nil, ErrAlreadyConnected
	}
	p.connected = true
	ctx, p.cancel = context.WithCancel(ctx)
	return ctx, nil
}

// release frees the cancel hook once Connect has settled.
func (p *Poster) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// transportFailed classifies a transport-level failure, absorbing
// deliberate aborts silently per the protocol contract.
func (p *Poster) transportFailed(err error) error {
	p.mu.Lock()
	aborted := p.aborted
	p.mu.Unlock()
	if aborted {
		return ErrAborted
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if _, ok := kiterrors.AsAppError(err); !ok {
		err = kiterrors.ConnectionFailed(err)
	}
	p.log.Warn("stream transport failed", logger.ErrorFields("connect", err))
	return err
}
