package starlarks

import (
	"fmt"
	"math/big"

	"github.com/reusee/clbridge/values"
	"go.starlark.net/starlark"
)

// ToStarlark converts a Lisp value. Proper lists and vectors become lists,
// mappings become dicts, packages become namespaces and proxies become
// functions. Values without a Starlark counterpart are wrapped in Object.
func ToStarlark(v values.Value) (starlark.Value, error) {
	c := &toConverter{
		seen: make(map[values.Value]starlark.Value),
	}
	return c.convert(v)
}

type toConverter struct {
	seen map[values.Value]starlark.Value
}

func (c *toConverter) convert(v values.Value) (starlark.Value, error) {
	switch v := v.(type) {

	case nil, values.Null:
		return starlark.None, nil
	case values.Bool:
		if !v {
			return starlark.None, nil
		}
		return starlark.True, nil

	case values.Integer:
		return starlark.MakeBigInt(v.Int), nil
	case values.Float:
		return starlark.Float(v.Value), nil
	case values.String:
		return starlark.String(v), nil
	case values.Symbol:
		if v == values.CL("T") {
			return starlark.True, nil
		}
		return Symbol(v), nil

	case *values.Cons:
		if ret, ok := c.seen[v]; ok {
			return ret, nil
		}
		items, err := values.ToSlice(v)
		if err != nil {
			// dotted or circular
			return &Object{Value: v}, nil
		}
		list := starlark.NewList(nil)
		c.seen[v] = list
		for _, item := range items {
			elem, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			if err := list.Append(elem); err != nil {
				return nil, err
			}
		}
		return list, nil

	case *values.Vector:
		if ret, ok := c.seen[v]; ok {
			return ret, nil
		}
		list := starlark.NewList(nil)
		c.seen[v] = list
		for _, item := range v.Items {
			elem, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			if err := list.Append(elem); err != nil {
				return nil, err
			}
		}
		return list, nil

	case *values.Mapping:
		if ret, ok := c.seen[v]; ok {
			return ret, nil
		}
		dict := starlark.NewDict(len(v.Entries))
		c.seen[v] = dict
		for _, entry := range v.Entries {
			key, err := c.convert(entry.Key)
			if err != nil {
				return nil, err
			}
			value, err := c.convert(entry.Value)
			if err != nil {
				return nil, err
			}
			if err := dict.SetKey(key, value); err != nil {
				return nil, err
			}
		}
		return dict, nil

	case *values.Package:
		return NewNamespace(v), nil
	case *values.Proxy:
		return NewFunction("", v), nil

	}
	return &Object{Value: v}, nil
}

// FromStarlark converts a Starlark value. Lists and tuples become proper
// lists, dicts become mappings and None becomes the empty list.
func FromStarlark(v starlark.Value) (values.Value, error) {
	c := &fromConverter{
		seen: make(map[starlark.Value]values.Value),
	}
	return c.convert(v)
}

type fromConverter struct {
	seen map[starlark.Value]values.Value
}

func (c *fromConverter) convert(v starlark.Value) (values.Value, error) {
	switch v := v.(type) {

	case starlark.NoneType:
		return values.Nil, nil
	case starlark.Bool:
		return values.Bool(v), nil
	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return values.Int(i), nil
		}
		return values.BigInt(new(big.Int).Set(v.BigInt())), nil
	case starlark.Float:
		return values.DoubleFloat(float64(v)), nil
	case starlark.String:
		return values.String(v), nil
	case starlark.Bytes:
		items := make([]values.Value, len(v))
		for i := range len(v) {
			items[i] = values.Int(int64(v[i]))
		}
		return values.NewArray([]int{len(v)}, items), nil

	case Symbol:
		return values.Symbol(v), nil
	case *Object:
		return v.Value, nil
	case *Function:
		return v.proxy, nil
	case *Namespace:
		return v.pkg, nil

	case *starlark.List:
		if ret, ok := c.seen[v]; ok {
			return ret, nil
		}
		if v.Len() == 0 {
			return values.Nil, nil
		}
		// cells are linked first so that self references resolve
		head := values.NewCons(nil, values.Nil)
		c.seen[v] = head
		cell := head
		for i := range v.Len() {
			if i > 0 {
				next := values.NewCons(nil, values.Nil)
				cell.Rest = next
				cell = next
			}
			item, err := c.convert(v.Index(i))
			if err != nil {
				return nil, err
			}
			cell.First = item
		}
		return head, nil

	case starlark.Tuple:
		items := make([]values.Value, 0, len(v))
		for _, elem := range v {
			item, err := c.convert(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return values.List(items...), nil

	case *starlark.Dict:
		if ret, ok := c.seen[v]; ok {
			return ret, nil
		}
		m := values.NewMapping()
		c.seen[v] = m
		for _, item := range v.Items() {
			key, err := c.convert(item[0])
			if err != nil {
				return nil, err
			}
			value, err := c.convert(item[1])
			if err != nil {
				return nil, err
			}
			m.Set(key, value)
		}
		return m, nil

	}
	return nil, values.UnrepresentableValueError{Value: v}
}

// fromResults converts the values of a peer call: None for no values, the
// value for one, a tuple otherwise.
func fromResults(rets []values.Value) (starlark.Value, error) {
	switch len(rets) {
	case 0:
		return starlark.None, nil
	case 1:
		return ToStarlark(rets[0])
	}
	tuple := make(starlark.Tuple, 0, len(rets))
	for _, ret := range rets {
		v, err := ToStarlark(ret)
		if err != nil {
			return nil, err
		}
		tuple = append(tuple, v)
	}
	return tuple, nil
}

func makeSymbol(name string, pkg starlark.Value) (values.Symbol, error) {
	switch pkg := pkg.(type) {
	case starlark.NoneType:
		return values.Sym(name, values.UserPackage), nil
	case starlark.String:
		return values.Sym(name, string(pkg)), nil
	case *Namespace:
		return values.Sym(name, pkg.pkg.Name), nil
	}
	return values.Symbol{}, fmt.Errorf("package must be a string or a lisp package, not %s", pkg.Type())
}
