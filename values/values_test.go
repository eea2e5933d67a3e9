package values

import (
	"errors"
	"math/big"
	"testing"
)

func TestList(t *testing.T) {
	l := List(Int(1), Int(2), Int(3))
	items, err := ToSlice(l)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("got %v", items)
	}
	if !Equal(items[2], Int(3)) {
		t.Fatalf("got %v", items[2])
	}

	if List() != Value(Nil) {
		t.Fatal()
	}

	dotted := DottedList(Int(1), Int(2))
	cons, ok := dotted.(*Cons)
	if !ok {
		t.Fatal()
	}
	if !Equal(cons.Rest, Int(2)) {
		t.Fatalf("got %v", cons.Rest)
	}
	if _, err := ToSlice(dotted); err == nil {
		t.Fatal("should error")
	}

	var n int
	for range Elements(dotted) {
		n++
	}
	if n != 1 {
		t.Fatalf("got %d", n)
	}
}

func TestToSliceCircular(t *testing.T) {
	c := NewCons(Int(2), nil)
	c.Rest = c
	if _, err := ToSlice(c); err == nil {
		t.Fatal("should error")
	}
}

func TestCarCdr(t *testing.T) {
	v, err := Car(Nil)
	if err != nil {
		t.Fatal(err)
	}
	if !IsNil(v) {
		t.Fatal()
	}
	v, err = Cdr(List(Int(1), Int(2)))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(v, List(Int(2))) {
		t.Fatalf("got %v", v)
	}
	if _, err := Car(String("foo")); err == nil {
		t.Fatal("should error")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  Value
		equal bool
	}{
		{Int(1), Int(1), true},
		{Int(1), Int(2), false},
		{NewRatio(1, 2), NewRatio(2, 4), true},
		{NewRatio(4, 2), Int(2), true},
		{SingleFloat(1), DoubleFloat(1), false},
		{DoubleFloat(1.5), DoubleFloat(1.5), true},
		{Nil, nil, true},
		{Nil, Bool(false), true},
		{T, T, true},
		{T, Nil, false},
		{Sym("FOO", "X"), Sym("FOO", "X"), true},
		{Sym("FOO", "X"), Sym("FOO", "Y"), false},
		{Keyword("FOO"), Sym("FOO", KeywordPackage), true},
		{String("a"), String("a"), true},
		{String("a"), Char('a'), false},
		{List(Int(1), List(Int(2))), List(Int(1), List(Int(2))), true},
		{List(Int(1)), DottedList(Int(1), Int(2)), false},
		{NewVector(Int(1)), NewVector(Int(1)), true},
		{NewVector(Int(1)), List(Int(1)), false},
		{
			Complex{Real: Int(1), Imag: Int(2)},
			Complex{Real: Int(1), Imag: Int(2)},
			true,
		},
		{Integer{}, Int(0), true},
		{Integer{}, Integer{}, true},
		{Int(3), Integer{}, false},
		{Ratio{}, NewRatio(1, 2), false},
		{(*Cons)(nil), (*Cons)(nil), true},
		{(*Cons)(nil), List(Int(1)), false},
		{List(Int(1)), (*Cons)(nil), false},
		{(*Proxy)(nil), NewProxy(1, nil), false},
	}
	for i, test := range tests {
		if got := Equal(test.a, test.b); got != test.equal {
			t.Fatalf("%d: got %v", i, got)
		}
	}
}

func TestMapping(t *testing.T) {
	m := NewMapping()
	m.Set(String("a"), Int(1))
	m.Set(Int(2), Int(2))
	m.Set(String("a"), Int(3))
	if m.Len() != 2 {
		t.Fatalf("got %d", m.Len())
	}
	v, ok := m.Get(String("a"))
	if !ok || !Equal(v, Int(3)) {
		t.Fatalf("got %v", v)
	}

	m2 := NewMapping()
	m2.Set(Int(2), Int(2))
	m2.Set(String("a"), Int(3))
	if !Equal(m, m2) {
		t.Fatal()
	}

	m.Delete(Int(2))
	if _, ok := m.Get(Int(2)); ok {
		t.Fatal()
	}
}

func TestPackageLookup(t *testing.T) {
	fn := NewProxy(1, nil)
	pkg := &Package{
		Name: "COMMON-LISP",
		Members: []Entry{
			{Key: String("TYPE-OF"), Value: fn},
			{Key: String("<="), Value: Int(2)},
		},
	}
	v, ok := pkg.Lookup("type_of")
	if !ok || v != Value(fn) {
		t.Fatalf("got %v", v)
	}
	v, ok = pkg.Lookup("TYPE-OF")
	if !ok || v != Value(fn) {
		t.Fatalf("got %v", v)
	}
	if _, ok := pkg.Lookup("le"); !ok {
		t.Fatal()
	}
	if _, ok := pkg.Lookup("foo"); ok {
		t.Fatal()
	}
	names := pkg.HostNames()
	if len(names) != 2 || names[0] != "type_of" || names[1] != "le" {
		t.Fatalf("got %v", names)
	}
}

func TestProxyWithoutOwner(t *testing.T) {
	_, err := NewProxy(1, nil).Call(t.Context())
	if !errors.Is(err, ErrNoOwner) {
		t.Fatalf("got %v", err)
	}
}

func TestKeywordFor(t *testing.T) {
	if k := KeywordFor("from_end"); k != Keyword("FROM-END") {
		t.Fatalf("got %v", k)
	}
}

func TestInferElementType(t *testing.T) {
	if e := InferElementType([]Value{Int(1), Int(2)}); e != ElementInteger {
		t.Fatalf("got %v", e)
	}
	if e := InferElementType([]Value{DoubleFloat(1), DoubleFloat(2)}); e != ElementDoubleFloat {
		t.Fatalf("got %v", e)
	}
	if e := InferElementType([]Value{DoubleFloat(1), SingleFloat(2)}); e != ElementT {
		t.Fatalf("got %v", e)
	}
	if e := InferElementType([]Value{List(Int(1))}); e != ElementT {
		t.Fatalf("got %v", e)
	}
	if !IsAtom(NewArray([]int{2}, []Value{Int(1), Int(2)})) {
		t.Fatal()
	}
	if IsAtom(NewArray([]int{1}, []Value{String("a")})) {
		t.Fatal()
	}
}

func TestFrom(t *testing.T) {
	v, err := From([]any{1, "a", true, nil, 1.5})
	if err != nil {
		t.Fatal(err)
	}
	expected := NewVector(Int(1), String("a"), T, Nil, DoubleFloat(1.5))
	if !Equal(v, expected) {
		t.Fatalf("got %v", v)
	}

	v, err = From(map[string]int{"b": 2, "a": 1})
	if err != nil {
		t.Fatal(err)
	}
	m := v.(*Mapping)
	if m.Len() != 2 || !Equal(m.Entries[0].Key, String("a")) {
		t.Fatalf("got %v", m.Entries)
	}

	v, err = From(big.NewRat(3, 6))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(v, NewRatio(1, 2)) {
		t.Fatalf("got %v", v)
	}

	_, err = From(make(chan int))
	var unrepresentable UnrepresentableValueError
	if !errors.As(err, &unrepresentable) {
		t.Fatalf("got %v", err)
	}
}
