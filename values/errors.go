package values

import (
	"errors"
	"fmt"
)

var ErrNoOwner = errors.New("proxy has no owning session")

// UnrepresentableValueError reports a value outside the value model.
type UnrepresentableValueError struct {
	Value any
}

func (u UnrepresentableValueError) Error() string {
	if v, ok := u.Value.(Value); ok && v != nil {
		return fmt.Sprintf("unrepresentable value: %v (%T)", v.Kind(), v)
	}
	return fmt.Sprintf("unrepresentable value: %T", u.Value)
}
