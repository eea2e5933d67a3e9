package sessions

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/reusee/clbridge/logs"
	"github.com/reusee/clbridge/procs"
	"github.com/reusee/clbridge/values"
	"github.com/reusee/clbridge/writer"
)

type exchange struct {
	session *Session
	ctx     context.Context
	values  []values.Value
	remote  *RemoteError
	output  string
}

type step = procs.Proc[*exchange]

// the four parts of a response, in wire order
var response = procs.Procs[*exchange]{
	procs.Func[*exchange](readPackage),
	procs.Func[*exchange](readValues),
	procs.Func[*exchange](readError),
	procs.Func[*exchange](readOutput),
}

// exchange sends form and reads the response. It returns the values, a
// RemoteError, or a ProtocolError that kills the session.
func (s *Session) exchange(ctx context.Context, form values.Value) ([]values.Value, error) {
	if !s.guard.TryAcquire() {
		return nil, ErrBusy
	}
	defer s.guard.Release()

	if s.closed.Load() {
		return nil, ErrClosed
	}
	if s.dead != nil {
		return nil, s.dead
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := writer.Marshal(form)
	if err != nil {
		return nil, err
	}

	ctx = logs.WithExchange(logs.WithSession(ctx, s.id), s.seq.Add(1))

	var request strings.Builder
	released := s.handles.Drain()
	for _, handle := range released {
		fmt.Fprintf(&request, "#%d! ", handle)
	}
	if len(released) > 0 {
		s.logger.DebugContext(ctx, "release handles", "handles", released)
	}
	request.WriteString(text)
	request.WriteByte('\n')

	if _, err := s.requests.WriteString(request.String()); err != nil {
		return nil, s.fail(ctx, "request", err)
	}
	if err := s.requests.Flush(); err != nil {
		return nil, s.fail(ctx, "request", err)
	}

	e := &exchange{
		session: s,
		ctx:     ctx,
	}
	if err := procs.Run(e, step(response)); err != nil {
		return nil, err
	}

	if e.output != "" {
		if _, err := io.WriteString(s.output, e.output); err != nil {
			s.logger.DebugContext(ctx, "write output", "error", err)
		}
	}

	if e.remote != nil {
		s.logger.InfoContext(ctx, "remote error",
			"condition", e.remote.Condition,
			"message", e.remote.Message,
		)
		return nil, *e.remote
	}

	s.logger.DebugContext(ctx, "exchange",
		"request", text,
		"values", len(e.values),
		"package", s.Package(),
	)
	return e.values, nil
}

// fail marks the session dead.
func (s *Session) fail(ctx context.Context, part string, err error) error {
	if s.closed.Load() {
		s.dead = ErrClosed
		return ErrClosed
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	protocolErr := ProtocolError{
		Step: part,
		Err:  err,
	}
	s.dead = protocolErr
	s.logger.ErrorContext(ctx, "protocol error", "step", part, "error", err)
	return protocolErr
}

func (e *exchange) read(part string) (values.Value, error) {
	s := e.session
	v, err := s.readtable.Read(s.responses)
	if err != nil {
		return nil, s.fail(e.ctx, part, err)
	}
	return v, nil
}

func (e *exchange) unexpected(part string, v values.Value) error {
	return e.session.fail(e.ctx, part, fmt.Errorf("%w: %s", ErrUnexpectedResponse, values.KindOf(v)))
}

func readPackage(e *exchange) (step, error) {
	v, err := e.read("package")
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case values.String:
		e.session.setPackage(string(v))
	case values.Symbol:
		e.session.setPackage(v.Name)
	default:
		return nil, e.unexpected("package", v)
	}
	return nil, nil
}

func readValues(e *exchange) (step, error) {
	v, err := e.read("values")
	if err != nil {
		return nil, err
	}
	rets, err := values.ToSlice(v)
	if err != nil {
		return nil, e.unexpected("values", v)
	}
	e.values = rets
	return nil, nil
}

func readError(e *exchange) (step, error) {
	v, err := e.read("error")
	if err != nil {
		return nil, err
	}
	if values.IsNil(v) {
		return nil, nil
	}
	parts, err := values.ToSlice(v)
	if err != nil || len(parts) != 2 {
		return nil, e.unexpected("error", v)
	}
	remote := &RemoteError{}
	switch condition := parts[0].(type) {
	case values.Symbol:
		remote.Condition = condition.Name
	case values.String:
		remote.Condition = string(condition)
	default:
		return nil, e.unexpected("error", v)
	}
	message, ok := parts[1].(values.String)
	if !ok {
		return nil, e.unexpected("error", v)
	}
	remote.Message = string(message)
	e.remote = remote
	return nil, nil
}

func readOutput(e *exchange) (step, error) {
	v, err := e.read("output")
	if err != nil {
		return nil, err
	}
	output, ok := v.(values.String)
	if !ok {
		return nil, e.unexpected("output", v)
	}
	e.output = string(output)
	return nil, nil
}
