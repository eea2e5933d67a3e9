package reader

import (
	"errors"
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/reusee/clbridge/values"
)

type fakeHandles map[int64]*values.Proxy

func (f fakeHandles) GetOrCreate(handle int64) *values.Proxy {
	if p, ok := f[handle]; ok {
		return p
	}
	p := values.NewProxy(handle, nil)
	f[handle] = p
	return p
}

func mustRead(t *testing.T, r *Readtable, src string) values.Value {
	t.Helper()
	v, err := r.ReadString(src)
	if err != nil {
		t.Fatalf("%q: %v", src, err)
	}
	return v
}

func TestTokens(t *testing.T) {
	r := New(nil, nil)
	tests := []struct {
		src      string
		expected values.Value
	}{
		{"42", values.Int(42)},
		{"-7", values.Int(-7)},
		{"+3", values.Int(3)},
		{"12.", values.Int(12)},
		{"123456789012345678901234567890", values.BigInt(func() *big.Int {
			i, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
			return i
		}())},
		{"1/2", values.NewRatio(1, 2)},
		{"4/2", values.Int(2)},
		{"-3/6", values.NewRatio(-1, 2)},
		{"1.5", values.Float{Value: 1.5, Precision: values.Single}},
		{".5", values.Float{Value: 0.5, Precision: values.Single}},
		{"1.5d0", values.Float{Value: 1.5, Precision: values.Double}},
		{"2D3", values.Float{Value: 2000, Precision: values.Double}},
		{"1.5s0", values.Float{Value: 1.5, Precision: values.Short}},
		{"1.5f0", values.Float{Value: 1.5, Precision: values.Single}},
		{"1e2", values.Float{Value: 100, Precision: values.Single}},
		{"1.5l0", values.Float{Value: 1.5, Precision: values.Long}},
		{"foo", values.Sym("FOO", values.UserPackage)},
		{"|foo|", values.Sym("foo", values.UserPackage)},
		{"f\\oo", values.Sym("FoO", values.UserPackage)},
		{"\\1", values.Sym("1", values.UserPackage)},
		{"|1/2|", values.Sym("1/2", values.UserPackage)},
		{"+", values.Sym("+", values.UserPackage)},
		{"1+", values.Sym("1+", values.UserPackage)},
		{":key", values.Keyword("KEY")},
		{":||", values.Keyword("")},
		{"x::||", values.Sym("", "X")},
		{"||", values.Sym("", values.UserPackage)},
		{"cl:car", values.Sym("CAR", "CL")},
		{"sb-ext::foo", values.Sym("FOO", "SB-EXT")},
		{"pkg:|a:b|", values.Sym("a:b", "PKG")},
		{"#:gensym", values.Symbol{Name: "GENSYM"}},
		{"t", values.Sym("T", values.UserPackage)},
		{"common-lisp:t", values.T},
		{"cl:nil", values.Nil},
		{"()", values.Nil},
		{"\"a\\\"b\"", values.String("a\"b")},
		{"#\\a", values.Char('a')},
		{"#\\(", values.Char('(')},
		{"#\\Space", values.Char(' ')},
		{"#\\newline", values.Char('\n')},
		{"#\\U41", values.Char('A')},
		{"#c(1 2)", values.Complex{Real: values.Int(1), Imag: values.Int(2)}},
	}
	for _, test := range tests {
		v := mustRead(t, r, test.src)
		if !values.Equal(v, test.expected) {
			t.Fatalf("%q: got %v", test.src, v)
		}
	}
}

func TestShortFloatRounding(t *testing.T) {
	r := New(nil, nil)
	v := mustRead(t, r, "0.1s0")
	f := v.(values.Float)
	if f.Precision != values.Short {
		t.Fatalf("got %v", f.Precision)
	}
	if f.Value == 0.1 || f.Value-0.1 > 1e-3 || 0.1-f.Value > 1e-3 {
		t.Fatalf("got %v", f.Value)
	}
}

func TestCurrentPackage(t *testing.T) {
	pkg := "MY-PKG"
	r := New(func() string {
		return pkg
	}, nil)
	if v := mustRead(t, r, "foo"); !values.Equal(v, values.Sym("FOO", "MY-PKG")) {
		t.Fatalf("got %v", v)
	}
	pkg = ""
	if v := mustRead(t, r, "foo"); !values.Equal(v, values.Sym("FOO", values.UserPackage)) {
		t.Fatalf("got %v", v)
	}
}

func TestLists(t *testing.T) {
	r := New(nil, nil)
	v := mustRead(t, r, "(1 (2 \"x\") . 3)")
	expected := values.DottedList(
		values.Int(1),
		values.List(values.Int(2), values.String("x")),
		values.Int(3),
	)
	if !values.Equal(v, expected) {
		t.Fatalf("got %v", v)
	}

	v = mustRead(t, r, "(a ; comment\n b #| block #| nested |# |# c)")
	items, err := values.ToSlice(v)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("got %v", items)
	}

	v = mustRead(t, r, "'x")
	if !values.Equal(v, values.Quote(values.Sym("X", values.UserPackage))) {
		t.Fatalf("got %v", v)
	}
	v = mustRead(t, r, "#'car")
	if !values.Equal(v, values.Function(values.Sym("CAR", values.UserPackage))) {
		t.Fatalf("got %v", v)
	}
	v = mustRead(t, r, "(1 . (2 3))")
	if !values.Equal(v, values.List(values.Int(1), values.Int(2), values.Int(3))) {
		t.Fatalf("got %v", v)
	}
}

func TestVectorsAndArrays(t *testing.T) {
	r := New(nil, nil)
	v := mustRead(t, r, "#(1 \"a\" #())")
	vec := v.(*values.Vector)
	if len(vec.Items) != 3 {
		t.Fatalf("got %v", vec.Items)
	}
	if inner := vec.Items[2].(*values.Vector); len(inner.Items) != 0 {
		t.Fatalf("got %v", inner)
	}

	v = mustRead(t, r, "#3(1 2)")
	if !values.Equal(v, values.NewVector(values.Int(1), values.Int(2), values.Int(2))) {
		t.Fatalf("got %v", v)
	}

	v = mustRead(t, r, "#2A((1 2 3) (4 5 6))")
	arr := v.(*values.Array)
	if len(arr.Dimensions) != 2 || arr.Dimensions[0] != 2 || arr.Dimensions[1] != 3 {
		t.Fatalf("got %v", arr.Dimensions)
	}
	if !arr.Specialized() || arr.Element != values.ElementInteger {
		t.Fatalf("got %v", arr.Element)
	}
	if !values.Equal(arr.Items[4], values.Int(5)) {
		t.Fatalf("got %v", arr.Items[4])
	}

	v = mustRead(t, r, "#1A(1.5d0 2.5d0)")
	if arr := v.(*values.Array); arr.Element != values.ElementDoubleFloat {
		t.Fatalf("got %v", arr.Element)
	}

	v = mustRead(t, r, "#0Ax")
	if arr := v.(*values.Array); arr.Rank() != 0 || len(arr.Items) != 1 {
		t.Fatalf("got %v", arr)
	}

	_, err := r.ReadString("#2A((1 2) (3))")
	if !errors.Is(err, ErrMalformedLiteral) {
		t.Fatalf("got %v", err)
	}
}

func TestMappings(t *testing.T) {
	r := New(nil, nil)
	v := mustRead(t, r, `{"a" 1 :b (2 3)}`)
	m := v.(*values.Mapping)
	if m.Len() != 2 {
		t.Fatalf("got %v", m.Len())
	}
	got, ok := m.Get(values.String("a"))
	if !ok || !values.Equal(got, values.Int(1)) {
		t.Fatalf("got %v", got)
	}
	got, ok = m.Get(values.Keyword("B"))
	if !ok || !values.Equal(got, values.List(values.Int(2), values.Int(3))) {
		t.Fatalf("got %v", got)
	}

	if v := mustRead(t, r, "{}"); v.(*values.Mapping).Len() != 0 {
		t.Fatalf("got %v", v)
	}

	_, err := r.ReadString(`{"a" 1 "b"}`)
	if !errors.Is(err, ErrOddMapping) {
		t.Fatalf("got %v", err)
	}
}

func TestProxies(t *testing.T) {
	handles := make(fakeHandles)
	r := New(nil, handles)
	v := mustRead(t, r, "(#7? #7? #8?)")
	items, err := values.ToSlice(v)
	if err != nil {
		t.Fatal(err)
	}
	if items[0] != items[1] {
		t.Fatal("same handle should read as the same proxy")
	}
	if items[0] == items[2] {
		t.Fatal()
	}
	if p := items[2].(*values.Proxy); p.Handle != 8 {
		t.Fatalf("got %v", p.Handle)
	}

	_, err = r.ReadString("#?")
	if !errors.Is(err, ErrMissingPrefix) {
		t.Fatalf("got %v", err)
	}
}

func TestPackageLiteral(t *testing.T) {
	r := New(nil, nil)
	v := mustRead(t, r, `#M("MY-PKG" ("FOO" . 1) ("BAR-BAZ" . #5?))`)
	pkg := v.(*values.Package)
	if pkg.Name != "MY-PKG" {
		t.Fatalf("got %v", pkg.Name)
	}
	got, ok := pkg.Lookup("bar_baz")
	if !ok {
		t.Fatal()
	}
	if p, ok := got.(*values.Proxy); !ok || p.Handle != 5 {
		t.Fatalf("got %v", got)
	}
}

func TestLabels(t *testing.T) {
	r := New(nil, nil)
	v := mustRead(t, r, "#1=(2 . #1#)")
	c := v.(*values.Cons)
	if c.Rest != values.Value(c) {
		t.Fatal("should be circular")
	}

	v = mustRead(t, r, "(#1=(a) #1#)")
	items, err := values.ToSlice(v)
	if err != nil {
		t.Fatal(err)
	}
	if items[0] != items[1] {
		t.Fatal("should share structure")
	}

	_, err = r.ReadString("(#2#)")
	if !errors.Is(err, ErrUndefinedLabel) {
		t.Fatalf("got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	r := New(nil, nil)
	tests := []struct {
		src string
		err error
	}{
		{"(1 2", ErrUnexpectedEOF},
		{"\"abc", ErrUnexpectedEOF},
		{"#|", ErrUnexpectedEOF},
		{"", ErrUnexpectedEOF},
		{")", ErrUnmatchedDelimiter},
		{"}", ErrUnmatchedDelimiter},
		{"1/2/3", ErrInvalidToken},
		{"1/0", ErrInvalidToken},
		{"a:b:c", ErrInvalidToken},
		{"a:::b", ErrInvalidToken},
		{"pkg:", ErrInvalidToken},
		{"|pkg|:", ErrInvalidToken},
		{"#:a:b", ErrInvalidToken},
		{"#\\Bogus", ErrInvalidCharacterName},
		{"#%", ErrUndefinedMacro},
		{"`a", ErrUndefinedMacro},
		{".", ErrDottedList},
		{"( . 1)", ErrDottedList},
		{"(1 . 2 3)", ErrDottedList},
		{"#(1 . 2)", ErrDottedList},
		{"#c(1)", ErrMalformedLiteral},
		{"#M(1)", ErrMalformedLiteral},
		{"#99999999999999A()", ErrMalformedLiteral},
		{"#99999999999999999999999(1)", ErrMalformedLiteral},
		{"#100000A()", ErrMalformedLiteral},
		{"#2000000000(1)", ErrMalformedLiteral},
		{"1 2", ErrExtraInput},
	}
	for _, test := range tests {
		_, err := r.ReadString(test.src)
		if !errors.Is(err, test.err) {
			t.Fatalf("%q: got %v", test.src, err)
		}
		var parseErr ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%q: got %T", test.src, err)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	r := New(nil, nil)
	_, err := r.ReadString("(1\n 2\n 1/2/3)")
	var parseErr ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v", err)
	}
	if parseErr.Pos.Line != 3 || parseErr.Pos.Column != 2 {
		t.Fatalf("got %+v", parseErr.Pos)
	}
}

func TestReadStream(t *testing.T) {
	r := New(nil, nil)
	s := NewStream(strings.NewReader(" 1 (2) \"three\" ; trailing\n"))
	var got []values.Value
	for {
		v, err := r.Read(s)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if len(got) != 3 {
		t.Fatalf("got %v", got)
	}
	if !values.Equal(got[2], values.String("three")) {
		t.Fatalf("got %v", got[2])
	}
}

func TestParseToken(t *testing.T) {
	r := New(nil, nil)
	v, err := r.ParseToken("FOO")
	if err != nil {
		t.Fatal(err)
	}
	if !values.Equal(v, values.Sym("FOO", values.UserPackage)) {
		t.Fatalf("got %v", v)
	}
	if _, err := r.ParseToken("1.2.3"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v", err)
	}
}
