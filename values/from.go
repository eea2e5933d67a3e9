package values

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
)

// From converts Go native values into the value model. Slices become
// vectors, maps become mappings and nil becomes the empty list.
func From(v any) (Value, error) {
	switch v := v.(type) {

	case nil:
		return Nil, nil
	case Value:
		return v, nil

	case bool:
		if v {
			return T, nil
		}
		return Nil, nil

	case string:
		return String(v), nil
	case rune:
		return Char(v), nil

	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint:
		return Integer{Int: new(big.Int).SetUint64(uint64(v))}, nil
	case uint64:
		return Integer{Int: new(big.Int).SetUint64(v)}, nil
	case *big.Int:
		return BigInt(v), nil
	case *big.Rat:
		return Rational(v), nil

	case float32:
		return SingleFloat(v), nil
	case float64:
		return DoubleFloat(v), nil
	case complex64:
		return Complex{
			Real: SingleFloat(real(v)),
			Imag: SingleFloat(imag(v)),
		}, nil
	case complex128:
		return Complex{
			Real: DoubleFloat(real(v)),
			Imag: DoubleFloat(imag(v)),
		}, nil

	case []Value:
		return NewVector(v...), nil

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Slice, reflect.Array:
		items := make([]Value, value.Len())
		for i := range items {
			item, err := From(value.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return NewVector(items...), nil

	case reflect.Map:
		keys := value.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		m := NewMapping()
		for _, key := range keys {
			k, err := From(key.Interface())
			if err != nil {
				return nil, err
			}
			val, err := From(value.MapIndex(key).Interface())
			if err != nil {
				return nil, err
			}
			m.Set(k, val)
		}
		return m, nil

	case reflect.Pointer:
		if value.IsNil() {
			return Nil, nil
		}
		return From(value.Elem().Interface())

	}

	return nil, UnrepresentableValueError{Value: v}
}
