package starlarks

import (
	"context"
	"fmt"

	"github.com/reusee/clbridge/values"
	"github.com/reusee/clbridge/writer"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Peer is the part of a session scripts use.
type Peer interface {
	values.Caller
	EvalValues(ctx context.Context, form values.Value) ([]values.Value, error)
	ReadString(src string) (values.Value, error)
	Function(ctx context.Context, name string) (*values.Proxy, error)
	FindPackage(ctx context.Context, name string) (*values.Package, error)
	Package() string
}

// Globals returns the predeclared names of scripts run against peer.
func Globals(peer Peer) starlark.StringDict {
	return starlark.StringDict{
		"lisp": LispModule(peer),
	}
}

// LispModule builds the lisp module:
//
//	lisp.eval(form)             evaluate a form or source text
//	lisp.read(src)              read source text
//	lisp.dumps(value)           printed representation
//	lisp.function(name)         callable peer function
//	lisp.find_package(name)     peer package as a namespace
//	lisp.symbol(name, package)  symbol
//	lisp.keyword(name)          keyword symbol
//	lisp.vector(*items)         vector instead of list
//	lisp.package()              current package name
//	lisp.host_name(name)        host name of a Lisp member name
func LispModule(peer Peer) *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: "lisp",
		Members: starlark.StringDict{

			"eval": starlark.NewBuiltin("eval", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var form starlark.Value
				if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &form); err != nil {
					return nil, err
				}
				var lispForm values.Value
				var err error
				if src, ok := form.(starlark.String); ok {
					lispForm, err = peer.ReadString(string(src))
				} else {
					lispForm, err = FromStarlark(form)
				}
				if err != nil {
					return nil, err
				}
				rets, err := peer.EvalValues(contextOf(thread), lispForm)
				if err != nil {
					return nil, err
				}
				return fromResults(rets)
			}),

			"read": starlark.NewBuiltin("read", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var src string
				if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &src); err != nil {
					return nil, err
				}
				v, err := peer.ReadString(src)
				if err != nil {
					return nil, err
				}
				return ToStarlark(v)
			}),

			"dumps": starlark.NewBuiltin("dumps", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var value starlark.Value
				if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &value); err != nil {
					return nil, err
				}
				v, err := FromStarlark(value)
				if err != nil {
					return nil, err
				}
				text, err := writer.Marshal(v)
				if err != nil {
					return nil, err
				}
				return starlark.String(text), nil
			}),

			"function": starlark.NewBuiltin("function", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var name string
				if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
					return nil, err
				}
				proxy, err := peer.Function(contextOf(thread), name)
				if err != nil {
					return nil, err
				}
				return NewFunction(name, proxy), nil
			}),

			"find_package": starlark.NewBuiltin("find_package", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var name string
				if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
					return nil, err
				}
				pkg, err := peer.FindPackage(contextOf(thread), name)
				if err != nil {
					return nil, err
				}
				return NewNamespace(pkg), nil
			}),

			"symbol": starlark.NewBuiltin("symbol", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var name string
				var pkg starlark.Value = starlark.None
				if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "package?", &pkg); err != nil {
					return nil, err
				}
				if pkg == starlark.None {
					pkg = starlark.String(peer.Package())
				}
				sym, err := makeSymbol(name, pkg)
				if err != nil {
					return nil, err
				}
				return Symbol(sym), nil
			}),

			"keyword": starlark.NewBuiltin("keyword", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var name string
				if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
					return nil, err
				}
				return Symbol(values.KeywordFor(name)), nil
			}),

			"vector": starlark.NewBuiltin("vector", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if len(kwargs) > 0 {
					return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
				}
				items := make([]values.Value, 0, len(args))
				for _, arg := range args {
					item, err := FromStarlark(arg)
					if err != nil {
						return nil, err
					}
					items = append(items, item)
				}
				return &Object{Value: values.NewVector(items...)}, nil
			}),

			"package": starlarkutil.MakeFunc("package", func() string {
				return peer.Package()
			}),

			"host_name": starlarkutil.MakeFunc("host_name", values.HostName),
		},
	}
}
