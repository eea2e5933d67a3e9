package values

import (
	"fmt"
	"iter"
)

// Cons is a mutable pair. Chains of Cons cells form lists.
type Cons struct {
	First Value
	Rest  Value
}

func (*Cons) Kind() Kind { return KindCons }

func NewCons(first, rest Value) *Cons {
	return &Cons{First: first, Rest: rest}
}

// List builds a proper list.
func List(elems ...Value) Value {
	var ret Value = Nil
	for i := len(elems) - 1; i >= 0; i-- {
		ret = NewCons(elems[i], ret)
	}
	return ret
}

// DottedList builds a list whose last cell's Rest is the final element.
func DottedList(elems ...Value) Value {
	if len(elems) == 0 {
		return Nil
	}
	ret := elems[len(elems)-1]
	for i := len(elems) - 2; i >= 0; i-- {
		ret = NewCons(elems[i], ret)
	}
	return ret
}

func Quote(v Value) Value {
	return List(CL("QUOTE"), v)
}

func Function(v Value) Value {
	return List(CL("FUNCTION"), v)
}

func Car(v Value) (Value, error) {
	switch v := v.(type) {
	case *Cons:
		return v.First, nil
	}
	if IsNil(v) {
		return Nil, nil
	}
	return nil, fmt.Errorf("cannot take the car of %v", KindOf(v))
}

func Cdr(v Value) (Value, error) {
	switch v := v.(type) {
	case *Cons:
		return v.Rest, nil
	}
	if IsNil(v) {
		return Nil, nil
	}
	return nil, fmt.Errorf("cannot take the cdr of %v", KindOf(v))
}

// Elements iterates the First values of a cons chain. Iteration stops at the
// first Rest that is not a Cons, so dotted tails are skipped. Cyclic chains
// iterate forever unless the caller stops.
func Elements(v Value) iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for {
			cons, ok := v.(*Cons)
			if !ok {
				return
			}
			if !yield(cons.First) {
				return
			}
			v = cons.Rest
		}
	}
}

// ToSlice returns the elements of a proper list.
func ToSlice(v Value) ([]Value, error) {
	var ret []Value
	seen := make(map[*Cons]bool)
	for {
		if IsNil(v) {
			return ret, nil
		}
		cons, ok := v.(*Cons)
		if !ok {
			return nil, fmt.Errorf("not a proper list: dotted tail %v", KindOf(v))
		}
		if seen[cons] {
			return nil, fmt.Errorf("not a proper list: circular")
		}
		seen[cons] = true
		ret = append(ret, cons.First)
		v = cons.Rest
	}
}
