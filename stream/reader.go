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

// Sentinel errors.
var (
	// ErrClosed reports that the caller tore a Reader down via Close.
	ErrClosed = errors.New("stream: reader closed")
	// ErrAborted reports that the caller cancelled a Poster via Abort.
	ErrAborted = errors.New("stream: aborted")
	// ErrAlreadyConnected reports a second Connect on a single-shot instance.
	ErrAlreadyConnected = errors.New("stream: connect already called")
)

// Reader consumes a GET-based event stream. One instance serves one
// stream: Connect may be called once and settles exactly once.
type Reader struct {
	client  *httpclient.Client
	path    string
	cb      Callbacks
	log     *logger.Logger
	headers map[string]string

	mu        sync.Mutex
	cancel    context.CancelFunc
	closed    bool
	connected bool

	d *dispatcher
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithReaderLogger overrides the reader's logger.
func WithReaderLogger(log *logger.Logger) ReaderOption {
	return func(r *Reader) { r.log = log }
}

// WithReaderHeaders adds request headers, for request ids and the like.
func WithReaderHeaders(headers map[string]string) ReaderOption {
	return func(r *Reader) { r.headers = headers }
}

// NewReader creates an event-stream reader for the given path.
func NewReader(client *httpclient.Client, path string, cb Callbacks, opts ...ReaderOption) *Reader {
	r := &Reader{
		client: client,
		path:   path,
		cb:     cb,
		log:    logger.WithComponent("stream.reader"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.d = newDispatcher(cb, r.log)
	return r
}

// Connect opens the stream and blocks until it terminates, returning the
// settled outcome. Network-level failures fire OnConnectionError and
// return an error; a deliberate Close returns ErrClosed without firing
// any callback.
func (r *Reader) Connect(ctx context.Context) (*Outcome, error) {
	ctx, err := r.arm(ctx)
	if err != nil {
		return nil, err
	}
	defer r.release()

	headers := map[string]string{"Accept": "text/event-stream"}
	for k, v := range r.headers {
		headers[k] = v
	}
	resp, err := r.client.DoStream(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    r.path,
		Headers: headers,
	})
	if err != nil {
		return nil, r.connectionFailed(err)
	}
	defer func() { _ = resp.Close() }()

	sr := sse.NewReader(resp.Body)
	for {
		ev, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, r.connectionFailed(err)
		}
		if r.d.dispatch(ev.Data) {
			break
		}
	}

	return r.d.settle()
}

// Close tears the connection down. Idempotent; safe before Connect, during
// streaming, and after natural termination.
func (r *Reader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
}

// Content returns the accumulated chunk text. Valid once Connect has
// returned.
func (r *Reader) Content() string {
	return r.d.content.String()
}

// arm marks the reader connected and installs the cancel hook Close uses.
func (r *Reader) arm(ctx context.Context) (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if r.connected {
		return nil, ErrAlreadyConnected
	}
	r.connected = true
	ctx, r.cancel = context.WithCancel(ctx)
	return ctx, nil
}

// release frees the cancel hook once Connect has settled.
func (r *Reader) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// connectionFailed classifies a transport-level failure, distinguishing a
// deliberate Close from a genuine network error.
func (r *Reader) connectionFailed(err error) error {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if _, ok := kiterrors.AsAppError(err); !ok && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		err = kiterrors.ConnectionFailed(err)
	}
	r.log.Warn("connection failed", logger.ErrorFields("connect", err))
	r.cb.emitConnectionError(err)
	return err
}
