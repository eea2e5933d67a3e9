package circularity

import "github.com/reusee/clbridge/values"

// Encode returns a copy of v in which every node reachable through more than
// one path is defined once with a LabelDef and referenced with LabelRefs.
// The input is not modified.
func Encode(v values.Value) values.Value {
	a := newArena()
	a.scan(v)
	return a.copy(v)
}

func (a *arena) scan(v values.Value) {
	for {
		if values.IsAtom(v) {
			return
		}
		if a.visit(v) {
			return
		}
		switch v := v.(type) {

		case *values.Cons:
			a.scan(v.First)

		case *values.Vector:
			for _, item := range v.Items {
				a.scan(item)
			}
			return

		case *values.Array:
			for _, item := range v.Items {
				a.scan(item)
			}
			return

		case *values.Mapping:
			for _, entry := range v.Entries {
				a.scan(entry.Key)
				a.scan(entry.Value)
			}
			return

		default:
			return
		}
		// tail of a cons chain
		v = v.(*values.Cons).Rest
	}
}

func (a *arena) copy(v values.Value) values.Value {
	if values.IsAtom(v) {
		return v
	}

	label := a.label(v)
	if label < 0 {
		return &values.LabelRef{
			Label: -label,
		}
	}
	a.consume(v)

	var ret values.Value
	switch v := v.(type) {

	case *values.Cons:
		head := &values.Cons{
			First: a.copy(v.First),
		}
		tail := head
		rest := v.Rest
		for {
			cons, ok := rest.(*values.Cons)
			if !ok || a.label(cons) != 0 {
				tail.Rest = a.copy(rest)
				break
			}
			cell := &values.Cons{
				First: a.copy(cons.First),
			}
			tail.Rest = cell
			tail = cell
			rest = cons.Rest
		}
		ret = head

	case *values.Vector:
		items := make([]values.Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = a.copy(item)
		}
		ret = &values.Vector{
			Items: items,
		}

	case *values.Array:
		items := make([]values.Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = a.copy(item)
		}
		ret = &values.Array{
			Dimensions: v.Dimensions,
			Items:      items,
			Element:    v.Element,
		}

	case *values.Mapping:
		m := &values.Mapping{
			Entries: make([]values.Entry, 0, len(v.Entries)),
		}
		for _, entry := range v.Entries {
			key := a.copy(entry.Key)
			value := a.copy(entry.Value)
			m.Entries = append(m.Entries, values.Entry{
				Key:   key,
				Value: value,
			})
		}
		ret = m

	default:
		return v
	}

	if label > 0 {
		return &values.LabelDef{
			Label: label,
			Value: ret,
		}
	}
	return ret
}
