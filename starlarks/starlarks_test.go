package starlarks

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/reusee/clbridge/logs"
	"github.com/reusee/clbridge/modes"
	"github.com/reusee/clbridge/reader"
	"github.com/reusee/clbridge/sessions"
	"github.com/reusee/clbridge/values"
	"github.com/reusee/clbridge/writer"
	"github.com/reusee/dscope"
	"go.starlark.net/starlark"
)

type call struct {
	fn     values.Value
	args   []values.Value
	kwargs []values.KeywordArg
}

// fakePeer evaluates nothing: it records calls and answers from tables.
type fakePeer struct {
	readtable *reader.Readtable
	evals     []string
	calls     []call
	results   map[string][]values.Value
	packages  map[string]*values.Package
}

var _ Peer = new(fakePeer)

func newFakePeer() *fakePeer {
	p := &fakePeer{
		results:  make(map[string][]values.Value),
		packages: make(map[string]*values.Package),
	}
	p.readtable = reader.New(nil, nil)
	return p
}

func (p *fakePeer) Funcall(ctx context.Context, fn values.Value, args []values.Value, kwargs []values.KeywordArg) ([]values.Value, error) {
	p.calls = append(p.calls, call{fn, args, kwargs})
	var sum int64
	for _, arg := range args {
		if i, ok := arg.(values.Integer); ok {
			n, _ := i.Int64()
			sum += n
		}
	}
	return []values.Value{values.Int(sum)}, nil
}

func (p *fakePeer) EvalValues(ctx context.Context, form values.Value) ([]values.Value, error) {
	text, err := writer.Print(form)
	if err != nil {
		return nil, err
	}
	p.evals = append(p.evals, text)
	rets, ok := p.results[text]
	if !ok {
		return nil, sessions.RemoteError{Condition: "UNBOUND-VARIABLE", Message: text}
	}
	return rets, nil
}

func (p *fakePeer) ReadString(src string) (values.Value, error) {
	return p.readtable.ReadString(src)
}

func (p *fakePeer) Function(ctx context.Context, name string) (*values.Proxy, error) {
	return values.NewProxy(int64(len(name)), p), nil
}

func (p *fakePeer) FindPackage(ctx context.Context, name string) (*values.Package, error) {
	pkg, ok := p.packages[name]
	if !ok {
		return nil, sessions.ErrPackageNotFound
	}
	return pkg, nil
}

func (p *fakePeer) Package() string {
	return values.UserPackage
}

func exec(t *testing.T, peer Peer, src string) (string, error) {
	output := new(strings.Builder)
	var err error
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() logs.Writer {
			return io.Discard
		},
		func() sessions.Output {
			return output
		},
	).Call(func(
		execScript ExecScript,
	) {
		err = execScript(context.Background(), peer, "test.star", src)
	})
	return output.String(), err
}

func TestEval(t *testing.T) {
	peer := newFakePeer()
	peer.results["(COMMON-LISP-USER::FOO 1 \"a\")"] = []values.Value{values.Int(3)}
	peer.results["(COMMON-LISP::VALUES 1 2)"] = []values.Value{values.Int(1), values.Int(2)}

	out, err := exec(t, peer, `
print(lisp.eval('(foo 1 "a")'))
print(lisp.eval([lisp.symbol("VALUES", "COMMON-LISP"), 1, 2]))
`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "3\n(1, 2)\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRemoteErrorInScript(t *testing.T) {
	peer := newFakePeer()
	_, err := exec(t, peer, `lisp.eval("missing")`)
	var remote sessions.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("got %v", err)
	}
	if remote.Condition != "UNBOUND-VARIABLE" {
		t.Fatalf("got %s", remote.Condition)
	}
}

func TestNamespace(t *testing.T) {
	peer := newFakePeer()
	peer.packages["CL"] = &values.Package{
		Name: "COMMON-LISP",
		Members: []values.Entry{
			{Key: values.String("+"), Value: values.NewProxy(1, peer)},
			{Key: values.String("LIST-LENGTH"), Value: values.NewProxy(2, peer)},
		},
	}

	out, err := exec(t, peer, `
cl = lisp.find_package("CL")
print(cl.add(1, 2, 3))
print(getattr(cl, "+")(4, 5))
print(cl.list_length(1, key_name = "x"))
print(sorted(dir(cl)))
`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "6\n9\n1\n[\"add\", \"list_length\"]\n" {
		t.Fatalf("got %q", out)
	}
	last := peer.calls[len(peer.calls)-1]
	if len(last.kwargs) != 1 || last.kwargs[0].Name != "key_name" {
		t.Fatalf("got %v", last.kwargs)
	}
	if !values.Equal(last.kwargs[0].Value, values.String("x")) {
		t.Fatalf("got %v", last.kwargs[0].Value)
	}
}

func TestDumpsAndRead(t *testing.T) {
	peer := newFakePeer()
	out, err := exec(t, peer, `
print(lisp.dumps([1, "two", lisp.keyword("three_four"), None, True]))
print(lisp.dumps(lisp.vector(1, 2)))
print(lisp.dumps({"a": 1}))
x = lisp.read("(1 2/3 #\\a)")
print(x[0], type(x[1]), type(x[2]))
print(lisp.read("cl:car") == lisp.symbol("CAR", "CL"))
print(lisp.host_name("LIST-LENGTH"))
print(lisp.package())
`)
	if err != nil {
		t.Fatal(err)
	}
	expected := strings.Join([]string{
		`(1 "two" :THREE-FOUR () COMMON-LISP:T)`,
		`#(1 2)`,
		`{"a" 1}`,
		`1 lisp.ratio lisp.char`,
		`True`,
		`list_length`,
		`COMMON-LISP-USER`,
	}, "\n") + "\n"
	if out != expected {
		t.Fatalf("got %q", out)
	}
}

func TestToStarlark(t *testing.T) {
	cell := values.NewCons(values.Int(1), values.Nil)
	cell.Rest = cell
	vector := values.NewVector(values.Int(1))
	vector.Items = append(vector.Items, vector)

	for _, c := range []struct {
		input    values.Value
		expected string
	}{
		{values.Nil, "None"},
		{values.T, "True"},
		{values.Int(42), "42"},
		{values.DoubleFloat(1.5), "1.5"},
		{values.String("a"), `"a"`},
		{values.Keyword("K"), ":K"},
		{values.List(values.Int(1), values.String("b")), `[1, "b"]`},
		{values.DottedList(values.Int(1), values.Int(2)), "(1 . 2)"},
		{values.NewRatio(1, 2), "1/2"},
		{cell, "#1=(1 . #1#)"},
		{vector, "[1, [...]]"},
	} {
		v, err := ToStarlark(c.input)
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != c.expected {
			t.Fatalf("got %s, expected %s", v.String(), c.expected)
		}
	}
}

func TestFromStarlark(t *testing.T) {
	list := starlark.NewList([]starlark.Value{starlark.MakeInt(1)})
	list.Append(list)
	v, err := FromStarlark(list)
	if err != nil {
		t.Fatal(err)
	}
	head := v.(*values.Cons)
	second := head.Rest.(*values.Cons)
	if second.First != values.Value(head) {
		t.Fatal("self reference must be kept")
	}

	for _, c := range []struct {
		input    starlark.Value
		expected values.Value
	}{
		{starlark.None, values.Nil},
		{starlark.True, values.T},
		{starlark.MakeInt(7), values.Int(7)},
		{starlark.Float(0.5), values.DoubleFloat(0.5)},
		{starlark.String("s"), values.String("s")},
		{starlark.Tuple{starlark.MakeInt(1)}, values.List(values.Int(1))},
		{starlark.NewList(nil), values.Nil},
		{Symbol(values.Keyword("X")), values.Keyword("X")},
	} {
		v, err := FromStarlark(c.input)
		if err != nil {
			t.Fatal(err)
		}
		if !values.Equal(v, c.expected) {
			t.Fatalf("%v: got %v", c.input, v)
		}
	}

	_, err = FromStarlark(starlark.NewSet(0))
	var unrepresentable values.UnrepresentableValueError
	if !errors.As(err, &unrepresentable) {
		t.Fatalf("got %v", err)
	}
}
