package circularity

import "github.com/reusee/clbridge/values"

// arena addresses compound nodes by a stable slot index.
type arena struct {
	slots  map[values.Value]int
	labels []int // 0: seen once, n > 0: label n, -n: label n already emitted
	next   int
}

func newArena() *arena {
	return &arena{
		slots: make(map[values.Value]int),
	}
}

// visit registers v and reports whether it was seen before.
func (a *arena) visit(v values.Value) bool {
	if slot, ok := a.slots[v]; ok {
		if a.labels[slot] == 0 {
			a.next++
			a.labels[slot] = a.next
		}
		return true
	}
	a.slots[v] = len(a.labels)
	a.labels = append(a.labels, 0)
	return false
}

func (a *arena) label(v values.Value) int {
	slot, ok := a.slots[v]
	if !ok {
		return 0
	}
	return a.labels[slot]
}

func (a *arena) consume(v values.Value) {
	slot := a.slots[v]
	if a.labels[slot] > 0 {
		a.labels[slot] = -a.labels[slot]
	}
}
