package values

import "math/big"

// Equal reports structural equality. Proxies compare by identity. Equal does
// not detect cycles.
func Equal(a, b Value) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if IsNilPointer(a) || IsNilPointer(b) {
		return a == b
	}
	switch a := a.(type) {

	case Bool:
		return true

	case Integer:
		return bigInt(a).Cmp(bigInt(b.(Integer))) == 0

	case Ratio:
		br := b.(Ratio)
		if a.Rat == nil || br.Rat == nil {
			return a.Rat == br.Rat
		}
		return a.Rat.Cmp(br.Rat) == 0

	case Float:
		bf := b.(Float)
		return a.Precision == bf.Precision && a.Value == bf.Value

	case Complex:
		bc := b.(Complex)
		return Equal(a.Real, bc.Real) && Equal(a.Imag, bc.Imag)

	case String:
		return a == b.(String)

	case Char:
		return a == b.(Char)

	case Symbol:
		return a == b.(Symbol)

	case *Cons:
		bc := b.(*Cons)
		for {
			if a == bc {
				return true
			}
			if !Equal(a.First, bc.First) {
				return false
			}
			ar, aok := a.Rest.(*Cons)
			br, bok := bc.Rest.(*Cons)
			if !aok || !bok {
				return Equal(a.Rest, bc.Rest)
			}
			a, bc = ar, br
		}

	case *Vector:
		return equalSlices(a.Items, b.(*Vector).Items)

	case *Array:
		ba := b.(*Array)
		if len(a.Dimensions) != len(ba.Dimensions) {
			return false
		}
		for i, d := range a.Dimensions {
			if ba.Dimensions[i] != d {
				return false
			}
		}
		return equalSlices(a.Items, ba.Items)

	case *Mapping:
		bm := b.(*Mapping)
		if a.Len() != bm.Len() {
			return false
		}
		for _, entry := range a.Entries {
			v, ok := bm.Get(entry.Key)
			if !ok || !Equal(entry.Value, v) {
				return false
			}
		}
		return true

	case *Package:
		bp := b.(*Package)
		return a == bp || a.Name == bp.Name

	case *Proxy:
		return a == b.(*Proxy)

	case *LabelDef:
		bd := b.(*LabelDef)
		return a.Label == bd.Label && Equal(a.Value, bd.Value)

	case *LabelRef:
		return a.Label == b.(*LabelRef).Label

	}
	return false
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

var zero = new(big.Int)

// bigInt treats the zero Integer as 0.
func bigInt(i Integer) *big.Int {
	if i.Int == nil {
		return zero
	}
	return i.Int
}
