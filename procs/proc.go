package procs

// Proc is one step of a state machine. Run returns the step to run next, or
// nil when the machine is done.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}

// Func adapts a function to Proc.
type Func[C any] func(ctx C) (Proc[C], error)

func (f Func[C]) Run(ctx C) (Proc[C], error) {
	return f(ctx)
}

// Run drives proc until it is done or fails.
func Run[C any](ctx C, proc Proc[C]) error {
	for proc != nil {
		var err error
		proc, err = proc.Run(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
