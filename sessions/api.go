package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/reusee/clbridge/values"
)

var ErrPackageNotFound = errors.New("package not found")

var (
	bridgeBacktrace     = values.Sym("*BACKTRACE*", "CLBRIDGE")
	bridgeLoadQuicklisp = values.Sym("LOAD-QUICKLISP", "CLBRIDGE")
)

// EvalValues evaluates form in the peer and returns all of its values.
func (s *Session) EvalValues(ctx context.Context, form values.Value) ([]values.Value, error) {
	return s.exchange(ctx, form)
}

// Eval evaluates form in the peer and returns its primary value, or the
// empty list for no values.
func (s *Session) Eval(ctx context.Context, form values.Value) (values.Value, error) {
	rets, err := s.exchange(ctx, form)
	if err != nil {
		return nil, err
	}
	return values.Primary(rets), nil
}

// ReadString reads src with the session readtable, resolving unqualified
// symbols against the current package.
func (s *Session) ReadString(src string) (values.Value, error) {
	return s.readtable.ReadString(src)
}

// EvalString reads and evaluates one form.
func (s *Session) EvalString(ctx context.Context, src string) (values.Value, error) {
	form, err := s.ReadString(src)
	if err != nil {
		return nil, err
	}
	return s.Eval(ctx, form)
}

// Funcall applies fn to args and keyword arguments in the peer. Arguments are
// quoted so the peer does not evaluate them again.
func (s *Session) Funcall(ctx context.Context, fn values.Value, args []values.Value, kwargs []values.KeywordArg) ([]values.Value, error) {
	form := make([]values.Value, 0, 2+len(args)+2*len(kwargs))
	form = append(form, values.CL("FUNCALL"), values.Quote(fn))
	for _, arg := range args {
		form = append(form, values.Quote(arg))
	}
	for _, kwarg := range kwargs {
		form = append(form, values.KeywordFor(kwarg.Name), values.Quote(kwarg.Value))
	}
	return s.exchange(ctx, values.List(form...))
}

// Function returns the function named by name, read with the session
// readtable, as a callable proxy.
func (s *Session) Function(ctx context.Context, name string) (*values.Proxy, error) {
	sym, err := s.ReadString(name)
	if err != nil {
		return nil, err
	}
	v, err := s.Eval(ctx, values.Function(sym))
	if err != nil {
		return nil, err
	}
	proxy, ok := v.(*values.Proxy)
	if !ok {
		return nil, fmt.Errorf("%w: function %s is %s", ErrUnexpectedResponse, name, values.KindOf(v))
	}
	return proxy, nil
}

// FindPackage returns the package named name with its external functions.
func (s *Session) FindPackage(ctx context.Context, name string) (*values.Package, error) {
	rets, err := s.Funcall(ctx, values.CL("FIND-PACKAGE"), []values.Value{values.String(name)}, nil)
	if err != nil {
		return nil, err
	}
	v := values.Primary(rets)
	if values.IsNil(v) {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
	}
	pkg, ok := v.(*values.Package)
	if !ok {
		return nil, fmt.Errorf("%w: package %s is %s", ErrUnexpectedResponse, name, values.KindOf(v))
	}
	return pkg, nil
}

// InPackage makes name the current package of the peer.
func (s *Session) InPackage(ctx context.Context, name string) error {
	_, err := s.exchange(ctx, values.List(values.CL("IN-PACKAGE"), values.String(name)))
	return err
}

// SetBacktrace controls whether remote error messages carry a backtrace.
func (s *Session) SetBacktrace(ctx context.Context, on bool) error {
	_, err := s.exchange(ctx, values.List(values.CL("SETF"), bridgeBacktrace, values.Bool(on)))
	return err
}

// LoadQuicklisp loads quicklisp from the home directory of the peer and
// reports whether it was found.
func (s *Session) LoadQuicklisp(ctx context.Context) (bool, error) {
	v, err := s.Eval(ctx, values.List(bridgeLoadQuicklisp))
	if err != nil {
		return false, err
	}
	return !values.IsNil(v), nil
}
