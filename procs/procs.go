package procs

// Procs runs its elements in order; each element runs until it returns nil.
type Procs[C any] []Proc[C]

var _ Proc[any] = Procs[any]{}

func (p Procs[C]) Run(ctx C) (Proc[C], error) {
	if len(p) == 0 {
		return nil, nil
	}
	next, err := p[0].Run(ctx)
	if err != nil {
		return nil, err
	}
	if next == nil {
		if len(p) == 1 {
			return nil, nil
		}
		return p[1:], nil
	}
	// copy so a shared sequence is never mutated
	rest := make(Procs[C], len(p))
	rest[0] = next
	copy(rest[1:], p[1:])
	return rest, nil
}
