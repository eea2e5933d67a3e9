package configs

import (
	"errors"
	"iter"
)

// First decodes the value at path from the first file defining it. The zero
// value is returned when no file does; decode errors panic.
func First[T any](loader Loader, path string) T {
	var value T
	err := loader.AssignFirst(path, &value)
	if err != nil && !errors.Is(err, ErrValueNotFound) {
		panic(err)
	}
	return value
}

// All decodes the value at path from every file defining it.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value, err := range loader.IterCueValues(path) {
			if err != nil {
				panic(err)
			}
			var v T
			if err := value.Decode(&v); err != nil {
				panic(err)
			}
			if !yield(v) {
				return
			}
		}
	}
}
