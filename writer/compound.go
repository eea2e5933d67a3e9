package writer

import (
	"strconv"

	"github.com/reusee/clbridge/values"
)

func renderCons(p *printer, v values.Value) error {
	cons := v.(*values.Cons)
	var cells []values.Value
	defer func() {
		for _, cell := range cells {
			p.leave(cell)
		}
	}()

	p.sb.WriteByte('(')
	var rest values.Value = cons
	for i := 0; ; i++ {
		cell, ok := rest.(*values.Cons)
		if !ok {
			break
		}
		if err := p.enter(cell); err != nil {
			return err
		}
		cells = append(cells, cell)
		if i > 0 {
			p.sb.WriteByte(' ')
		}
		if err := p.print(cell.First); err != nil {
			return err
		}
		rest = cell.Rest
	}
	if !values.IsNil(rest) {
		p.sb.WriteString(" . ")
		if err := p.print(rest); err != nil {
			return err
		}
	}
	p.sb.WriteByte(')')
	return nil
}

func (p *printer) printItems(items []values.Value) error {
	for i, item := range items {
		if i > 0 {
			p.sb.WriteByte(' ')
		}
		if err := p.print(item); err != nil {
			return err
		}
	}
	return nil
}

func renderVector(p *printer, v values.Value) error {
	vec := v.(*values.Vector)
	if err := p.enter(vec); err != nil {
		return err
	}
	defer p.leave(vec)
	p.sb.WriteString("#(")
	if err := p.printItems(vec.Items); err != nil {
		return err
	}
	p.sb.WriteByte(')')
	return nil
}

func renderArray(p *printer, v values.Value) error {
	arr := v.(*values.Array)
	size := 1
	for _, dim := range arr.Dimensions {
		if dim < 0 {
			return values.UnrepresentableValueError{Value: v}
		}
		size *= dim
	}
	if size != len(arr.Items) {
		return values.UnrepresentableValueError{Value: v}
	}
	if err := p.enter(arr); err != nil {
		return err
	}
	defer p.leave(arr)

	p.sb.WriteByte('#')
	p.sb.WriteString(strconv.Itoa(arr.Rank()))
	p.sb.WriteByte('A')
	_, err := p.printDimension(arr, 0, 0)
	return err
}

// printDimension prints the sub array at depth starting at offset in row
// major order and returns the offset following it.
func (p *printer) printDimension(arr *values.Array, depth, offset int) (int, error) {
	if depth == arr.Rank() {
		return offset + 1, p.print(arr.Items[offset])
	}
	p.sb.WriteByte('(')
	for i := range arr.Dimensions[depth] {
		if i > 0 {
			p.sb.WriteByte(' ')
		}
		var err error
		offset, err = p.printDimension(arr, depth+1, offset)
		if err != nil {
			return 0, err
		}
	}
	p.sb.WriteByte(')')
	return offset, nil
}

func renderMapping(p *printer, v values.Value) error {
	m := v.(*values.Mapping)
	if err := p.enter(m); err != nil {
		return err
	}
	defer p.leave(m)
	p.sb.WriteByte('{')
	for i, entry := range m.Entries {
		if i > 0 {
			p.sb.WriteByte(' ')
		}
		if err := p.print(entry.Key); err != nil {
			return err
		}
		p.sb.WriteByte(' ')
		if err := p.print(entry.Value); err != nil {
			return err
		}
	}
	p.sb.WriteByte('}')
	return nil
}
