package values

import (
	"math/big"
)

// Null is the empty list, which doubles as logical false.
type Null struct{}

// Nil is the only Null value.
var Nil = Null{}

func (Null) Kind() Kind { return KindNil }

// Bool is logical truth. Bool(false) prints and compares as Nil.
type Bool bool

// T is the canonical true value.
const T = Bool(true)

func (Bool) Kind() Kind { return KindBool }

// IsNil reports whether v is logical false.
func IsNil(v Value) bool {
	switch v := v.(type) {
	case nil:
		return true
	case Null:
		return true
	case Bool:
		return !bool(v)
	}
	return false
}

type Integer struct {
	Int *big.Int
}

func (Integer) Kind() Kind { return KindInteger }

func Int(i int64) Integer {
	return Integer{Int: big.NewInt(i)}
}

func BigInt(i *big.Int) Integer {
	return Integer{Int: new(big.Int).Set(i)}
}

// Int64 returns the value and whether it fits.
func (i Integer) Int64() (int64, bool) {
	if i.Int == nil {
		return 0, true
	}
	return i.Int.Int64(), i.Int.IsInt64()
}

func (i Integer) String() string {
	if i.Int == nil {
		return "0"
	}
	return i.Int.String()
}

// Ratio is an exact non-integral rational.
type Ratio struct {
	Rat *big.Rat
}

func (Ratio) Kind() Kind { return KindRatio }

// NewRatio returns num/den in lowest terms; integral results are Integers.
// It panics if den is zero, like big.NewRat.
func NewRatio(num, den int64) Value {
	return Rational(big.NewRat(num, den))
}

// Rational normalizes r into either a Ratio or an Integer.
func Rational(r *big.Rat) Value {
	if r.IsInt() {
		return BigInt(r.Num())
	}
	return Ratio{Rat: new(big.Rat).Set(r)}
}

func (r Ratio) String() string {
	return r.Rat.Num().String() + "/" + r.Rat.Denom().String()
}

// Precision is the floating point tier selected by an exponent marker.
type Precision uint8

const (
	Single Precision = iota // e, f and no marker
	Short                   // s
	Double                  // d
	Long                    // l
)

// Marker returns the exponent marker letter printed for the tier.
func (p Precision) Marker() byte {
	switch p {
	case Short:
		return 's'
	case Double:
		return 'd'
	case Long:
		return 'l'
	}
	return 'f'
}

// Bits is the width used when formatting the mantissa.
func (p Precision) Bits() int {
	switch p {
	case Short, Single:
		return 32
	}
	return 64
}

// Float holds a floating point number rounded to its tier.
// Long floats are carried with float64 precision.
type Float struct {
	Value     float64
	Precision Precision
}

func (Float) Kind() Kind { return KindFloat }

func SingleFloat(f float32) Float {
	return Float{Value: float64(f), Precision: Single}
}

func DoubleFloat(f float64) Float {
	return Float{Value: f, Precision: Double}
}

// Complex pairs two real parts.
type Complex struct {
	Real Value
	Imag Value
}

func (Complex) Kind() Kind { return KindComplex }

// IsReal reports whether v can be a part of a Complex.
func IsReal(v Value) bool {
	switch KindOf(v) {
	case KindInteger, KindRatio, KindFloat:
		return true
	}
	return false
}

type String string

func (String) Kind() Kind { return KindString }

type Char rune

func (Char) Kind() Kind { return KindChar }
