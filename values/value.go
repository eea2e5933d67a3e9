package values

// Kind is the closed set of value kinds exchanged with the peer.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNil
	KindBool
	KindInteger
	KindRatio
	KindFloat
	KindComplex
	KindString
	KindChar
	KindSymbol
	KindCons
	KindVector
	KindArray
	KindMapping
	KindPackage
	KindProxy
	KindLabelDef
	KindLabelRef
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindNil:      "nil",
	KindBool:     "bool",
	KindInteger:  "integer",
	KindRatio:    "ratio",
	KindFloat:    "float",
	KindComplex:  "complex",
	KindString:   "string",
	KindChar:     "char",
	KindSymbol:   "symbol",
	KindCons:     "cons",
	KindVector:   "vector",
	KindArray:    "array",
	KindMapping:  "mapping",
	KindPackage:  "package",
	KindProxy:    "proxy",
	KindLabelDef: "label-def",
	KindLabelRef: "label-ref",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is implemented by every member of the value model.
type Value interface {
	Kind() Kind
}

// KindOf reports the kind of v, treating a Go nil as the empty list.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNil
	}
	return v.Kind()
}

// IsAtom reports whether v never takes part in structure sharing.
func IsAtom(v Value) bool {
	if IsNilPointer(v) {
		return true
	}
	switch KindOf(v) {
	case KindCons, KindVector, KindMapping:
		return false
	case KindArray:
		return v.(*Array).Specialized()
	}
	return true
}

// IsNilPointer reports a typed nil of one of the pointer kinds.
func IsNilPointer(v Value) bool {
	switch v := v.(type) {
	case *Cons:
		return v == nil
	case *Vector:
		return v == nil
	case *Array:
		return v == nil
	case *Mapping:
		return v == nil
	case *Package:
		return v == nil
	case *Proxy:
		return v == nil
	case *LabelDef:
		return v == nil
	case *LabelRef:
		return v == nil
	}
	return false
}
