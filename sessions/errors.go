package sessions

import (
	"errors"
	"fmt"

	"github.com/reusee/e5"
)

var (
	ErrClosed             = errors.New("session closed")
	ErrBusy               = errors.New("session busy")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

var wrap = e5.Wrap.With(e5.WrapStacktrace)

// ProtocolError is a failure to complete the four part response. It is fatal
// to the session: every later call returns the same error.
type ProtocolError struct {
	Step string
	Err  error
}

func (p ProtocolError) Error() string {
	return fmt.Sprintf("protocol error reading %s: %v", p.Step, p.Err)
}

func (p ProtocolError) Unwrap() error {
	return p.Err
}

// RemoteError is a condition signaled by the peer while evaluating a request.
type RemoteError struct {
	Condition string
	Message   string
}

func (r RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", r.Condition, r.Message)
}
