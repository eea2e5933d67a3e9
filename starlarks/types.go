package starlarks

import (
	"context"
	"fmt"
	"slices"

	"github.com/reusee/clbridge/values"
	"github.com/reusee/clbridge/writer"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Symbol is a Lisp symbol in Starlark.
type Symbol values.Symbol

var _ starlark.Comparable = Symbol{}

func (s Symbol) String() string {
	return values.Symbol(s).String()
}

func (Symbol) Type() string {
	return "lisp.symbol"
}

func (Symbol) Freeze() {}

func (Symbol) Truth() starlark.Bool {
	return starlark.True
}

func (s Symbol) Hash() (uint32, error) {
	return starlark.String(s.Package + "::" + s.Name).Hash()
}

func (s Symbol) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	switch op {
	case syntax.EQL:
		return s == y.(Symbol), nil
	case syntax.NEQ:
		return s != y.(Symbol), nil
	}
	return false, fmt.Errorf("%s %s %s not supported", s.Type(), op, y.Type())
}

// Object holds a Lisp value Starlark has no type for, such as a ratio, a
// character or a dotted list. It converts back unchanged.
type Object struct {
	Value values.Value
}

var _ starlark.Value = new(Object)

func (o *Object) String() string {
	text, err := writer.Marshal(o.Value)
	if err != nil {
		return fmt.Sprintf("<lisp %s>", values.KindOf(o.Value))
	}
	return text
}

func (o *Object) Type() string {
	return "lisp." + values.KindOf(o.Value).String()
}

func (o *Object) Freeze() {}

func (o *Object) Truth() starlark.Bool {
	return starlark.Bool(!values.IsNil(o.Value))
}

func (o *Object) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", o.Type())
}

// Function calls a peer object. Keyword arguments become Lisp keywords.
type Function struct {
	name  string
	proxy *values.Proxy
}

var _ starlark.Callable = new(Function)

func NewFunction(name string, proxy *values.Proxy) *Function {
	return &Function{
		name:  name,
		proxy: proxy,
	}
}

func (f *Function) Proxy() *values.Proxy {
	return f.proxy
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) String() string {
	if f.name == "" {
		return fmt.Sprintf("<lisp function #%d?>", f.proxy.Handle)
	}
	return fmt.Sprintf("<lisp function %s>", f.name)
}

func (f *Function) Type() string {
	return "lisp.function"
}

func (f *Function) Freeze() {}

func (f *Function) Truth() starlark.Bool {
	return starlark.True
}

func (f *Function) Hash() (uint32, error) {
	return uint32(f.proxy.Handle), nil
}

func (f *Function) CallInternal(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	lispArgs := make([]values.Value, 0, len(args))
	for _, arg := range args {
		v, err := FromStarlark(arg)
		if err != nil {
			return nil, err
		}
		lispArgs = append(lispArgs, v)
	}
	var lispKwargs []values.KeywordArg
	for _, kwarg := range kwargs {
		name, _ := starlark.AsString(kwarg[0])
		v, err := FromStarlark(kwarg[1])
		if err != nil {
			return nil, err
		}
		lispKwargs = append(lispKwargs, values.KeywordArg{
			Name:  name,
			Value: v,
		})
	}
	rets, err := f.proxy.CallWith(contextOf(thread), lispArgs, lispKwargs)
	if err != nil {
		return nil, err
	}
	return fromResults(rets)
}

// Namespace exposes the members of a peer package as attributes, by host name
// or by Lisp name through getattr.
type Namespace struct {
	pkg *values.Package
}

var _ starlark.HasAttrs = new(Namespace)

func NewNamespace(pkg *values.Package) *Namespace {
	return &Namespace{
		pkg: pkg,
	}
}

func (n *Namespace) String() string {
	return fmt.Sprintf("<lisp package %s>", n.pkg.Name)
}

func (n *Namespace) Type() string {
	return "lisp.package"
}

func (n *Namespace) Freeze() {}

func (n *Namespace) Truth() starlark.Bool {
	return starlark.True
}

func (n *Namespace) Hash() (uint32, error) {
	return starlark.String(n.pkg.Name).Hash()
}

func (n *Namespace) Attr(name string) (starlark.Value, error) {
	member, ok := n.pkg.Lookup(name)
	if !ok {
		return nil, nil
	}
	if proxy, ok := member.(*values.Proxy); ok {
		return NewFunction(n.pkg.Name+":"+name, proxy), nil
	}
	return ToStarlark(member)
}

func (n *Namespace) AttrNames() []string {
	names := n.pkg.HostNames()
	slices.Sort(names)
	return slices.Compact(names)
}

const threadContextKey = "clbridge.context"

// WithContext makes ctx the context of peer calls made by thread.
func WithContext(thread *starlark.Thread, ctx context.Context) {
	thread.SetLocal(threadContextKey, ctx)
}

func contextOf(thread *starlark.Thread) context.Context {
	if thread != nil {
		if ctx, ok := thread.Local(threadContextKey).(context.Context); ok {
			return ctx
		}
	}
	return context.Background()
}
