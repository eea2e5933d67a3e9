package sessions

import (
	"bufio"
	"context"
	"io"
	"sync/atomic"

	"github.com/reusee/clbridge/handles"
	"github.com/reusee/clbridge/logs"
	"github.com/reusee/clbridge/reader"
	"github.com/reusee/clbridge/syncs"
	"github.com/reusee/clbridge/values"
)

// Session is one conversation with a peer. It owns the readtable and the
// handle registry of that peer. A Session runs one exchange at a time; a
// call made while another is in flight fails with ErrBusy.
type Session struct {
	id        logs.SessionID
	logger    logs.Logger
	transport Transport
	requests  *bufio.Writer
	responses *reader.Stream
	readtable *reader.Readtable
	handles   *handles.Registry
	output    io.Writer

	guard  syncs.Semaphore
	pkg    atomic.Pointer[string]
	seq    atomic.Int64
	dead   error
	closed atomic.Bool
}

var _ values.Caller = new(Session)

// New starts a session over transport. Output the peer produces while
// evaluating is copied to output, which may be nil.
func New(ctx context.Context, transport Transport, logger logs.Logger, output io.Writer) *Session {
	if output == nil {
		output = io.Discard
	}
	id, _ := logs.SessionOf(ctx)
	s := &Session{
		id:        id,
		logger:    logger,
		transport: transport,
		requests:  bufio.NewWriter(transport),
		responses: reader.NewStream(transport),
		output:    output,
		guard:     syncs.NewSemaphore(1),
	}
	s.handles = handles.New(s)
	s.readtable = reader.New(s.Package, s.handles)
	return s
}

func (s *Session) ID() logs.SessionID {
	return s.id
}

// Package returns the current package reported by the last exchange.
func (s *Session) Package() string {
	if p := s.pkg.Load(); p != nil {
		return *p
	}
	return values.UserPackage
}

func (s *Session) setPackage(name string) {
	s.pkg.Store(&name)
}

// Readtable returns the readtable responses are read with.
func (s *Session) Readtable() *reader.Readtable {
	return s.readtable
}

// Release queues the handle of proxy for release with the next request.
func (s *Session) Release(proxy *values.Proxy) {
	s.handles.Release(proxy)
}

// PendingReleases returns the number of handles waiting to be released.
func (s *Session) PendingReleases() int {
	return s.handles.Pending()
}

// Close closes the transport. In flight and later calls fail with ErrClosed.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if pending := s.handles.Pending(); pending > 0 {
		// peer objects die with the transport
		s.logger.Debug("dropping handle releases", "session", s.id, "pending", pending)
	}
	err := s.transport.Close()
	s.logger.Info("session closed", "session", s.id)
	return err
}
