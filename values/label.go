package values

// LabelDef and LabelRef only exist while one value is being encoded or decoded.

type LabelDef struct {
	Label int
	Value Value
}

func (*LabelDef) Kind() Kind { return KindLabelDef }

type LabelRef struct {
	Label int
}

func (*LabelRef) Kind() Kind { return KindLabelRef }
