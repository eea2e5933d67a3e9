package values

// Vector is a fixed size sequence.
type Vector struct {
	Items []Value
}

func (*Vector) Kind() Kind { return KindVector }

func NewVector(items ...Value) *Vector {
	if items == nil {
		items = []Value{}
	}
	return &Vector{Items: items}
}

// ElementType is the element type an array was specialized to.
type ElementType uint8

const (
	ElementT ElementType = iota
	ElementInteger
	ElementSingleFloat
	ElementShortFloat
	ElementDoubleFloat
	ElementLongFloat
)

// Array is a multi dimensional array stored in row major order.
type Array struct {
	Dimensions []int
	Items      []Value
	Element    ElementType
}

func (*Array) Kind() Kind { return KindArray }

// NewArray returns an array with its element type inferred from items.
func NewArray(dims []int, items []Value) *Array {
	return &Array{
		Dimensions: dims,
		Items:      items,
		Element:    InferElementType(items),
	}
}

func (a *Array) Rank() int {
	return len(a.Dimensions)
}

// Specialized reports whether the array holds a primitive numeric kind.
func (a *Array) Specialized() bool {
	return a.Element != ElementT
}

// InferElementType picks a numeric element type when all items share one.
func InferElementType(items []Value) ElementType {
	if len(items) == 0 {
		return ElementT
	}
	ret := ElementT
	for i, item := range items {
		var t ElementType
		switch item := item.(type) {
		case Integer:
			t = ElementInteger
		case Float:
			switch item.Precision {
			case Single:
				t = ElementSingleFloat
			case Short:
				t = ElementShortFloat
			case Double:
				t = ElementDoubleFloat
			case Long:
				t = ElementLongFloat
			}
		default:
			return ElementT
		}
		if i == 0 {
			ret = t
		} else if t != ret {
			return ElementT
		}
	}
	return ret
}
