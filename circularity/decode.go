package circularity

import (
	"errors"
	"fmt"

	"github.com/reusee/clbridge/values"
)

var ErrUndefinedLabel = errors.New("undefined label")

type resolver struct {
	table map[int]values.Value
}

// Decode returns a copy of v with every LabelDef replaced by its value and
// every LabelRef replaced by the object built for its label.
func Decode(v values.Value) (values.Value, error) {
	r := &resolver{
		table: make(map[int]values.Value),
	}
	ret := r.copy(v)
	if ref, ok := ret.(*values.LabelRef); ok {
		resolved, err := r.resolve(ref)
		if err != nil {
			return nil, err
		}
		return resolved, nil
	}
	if err := r.finalize(ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *resolver) copy(v values.Value) values.Value {
	if values.IsNilPointer(v) {
		return v
	}
	switch v := v.(type) {

	case *values.LabelDef:
		ret := r.copy(v.Value)
		r.table[v.Label] = ret
		return ret

	case *values.Cons:
		head := &values.Cons{
			First: r.copy(v.First),
		}
		tail := head
		rest := v.Rest
		for {
			cons, ok := rest.(*values.Cons)
			if !ok {
				tail.Rest = r.copy(rest)
				break
			}
			cell := &values.Cons{
				First: r.copy(cons.First),
			}
			tail.Rest = cell
			tail = cell
			rest = cons.Rest
		}
		return head

	case *values.Vector:
		items := make([]values.Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = r.copy(item)
		}
		return &values.Vector{
			Items: items,
		}

	case *values.Array:
		if v.Specialized() {
			return v
		}
		items := make([]values.Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = r.copy(item)
		}
		return &values.Array{
			Dimensions: v.Dimensions,
			Items:      items,
			Element:    v.Element,
		}

	case *values.Mapping:
		m := &values.Mapping{
			Entries: make([]values.Entry, 0, len(v.Entries)),
		}
		for _, entry := range v.Entries {
			key := r.copy(entry.Key)
			value := r.copy(entry.Value)
			m.Entries = append(m.Entries, values.Entry{
				Key:   key,
				Value: value,
			})
		}
		return m

	}
	return v
}

// resolve follows a reference to the object recorded for its label.
func (r *resolver) resolve(ref *values.LabelRef) (values.Value, error) {
	seen := make(map[int]bool)
	for {
		if seen[ref.Label] {
			return nil, fmt.Errorf("%w: #%d# refers to itself", ErrUndefinedLabel, ref.Label)
		}
		seen[ref.Label] = true
		v, ok := r.table[ref.Label]
		if !ok {
			return nil, fmt.Errorf("%w: #%d#", ErrUndefinedLabel, ref.Label)
		}
		next, ok := v.(*values.LabelRef)
		if !ok {
			return v, nil
		}
		ref = next
	}
}

// slot replaces a reference in place, or descends into the value.
func (r *resolver) slot(p *values.Value) error {
	if ref, ok := (*p).(*values.LabelRef); ok {
		v, err := r.resolve(ref)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
	return r.finalize(*p)
}

func (r *resolver) finalize(v values.Value) error {
	for {
		if values.IsNilPointer(v) {
			return nil
		}
		switch node := v.(type) {

		case *values.Cons:
			if err := r.slot(&node.First); err != nil {
				return err
			}
			if ref, ok := node.Rest.(*values.LabelRef); ok {
				resolved, err := r.resolve(ref)
				if err != nil {
					return err
				}
				node.Rest = resolved
				return nil
			}
			v = node.Rest
			continue

		case *values.Vector:
			for i := range node.Items {
				if err := r.slot(&node.Items[i]); err != nil {
					return err
				}
			}

		case *values.Array:
			if node.Specialized() {
				return nil
			}
			for i := range node.Items {
				if err := r.slot(&node.Items[i]); err != nil {
					return err
				}
			}

		case *values.Mapping:
			for i := range node.Entries {
				if err := r.slot(&node.Entries[i].Key); err != nil {
					return err
				}
				if err := r.slot(&node.Entries[i].Value); err != nil {
					return err
				}
			}

		}
		return nil
	}
}
