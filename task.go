package coopio

// State is the three-valued settlement of a [Future]'s last Progress
// call.
type State uint8

const (
	// Pending indicates the future has not settled; it has either
	// registered a wake-up source with the reactor or handed its
	// [Waker] to some other collaborator, and must not be progressed
	// again until woken.
	Pending State = iota
	// Completed indicates the future settled successfully. Result
	// returns the success value.
	Completed
	// Failed indicates the future settled with an error. Err returns
	// the failure reason.
	Failed
)

// String renders the state the way a log field or test failure message
// would want it.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "invalid"
	}
}

// Future is a reusable cooperative computation: a task in the sense of
// spec section 3. A compliant owner (the [Executor], or a combinator
// that embeds other futures) must never call Progress again once it has
// returned [Completed] or [Failed].
//
// Progress must never block. If the future cannot make progress it must
// either register interest on a file descriptor with r (arranging for w
// to be woken later) or hand w to some other collaborator, then return
// [Pending].
type Future interface {
	Progress(r *Reactor, w Waker) State
	// Result returns the success value. Valid only once Progress has
	// returned Completed; behavior is undefined otherwise.
	Result() any
	// Err returns the failure reason. Valid only once Progress has
	// returned Failed; behavior is undefined otherwise.
	Err() error
}

// ArgSetter is implemented by a [Future] that accepts an opaque input
// value before its first Progress call. [Then] uses it to seed the
// second inner future's argument from the first's result; a leaf future
// with no input need not implement it.
type ArgSetter interface {
	SetArg(v any)
}

// setArg seeds f's argument if it accepts one, a no-op otherwise.
func setArg(f Future, v any) {
	if s, ok := f.(ArgSetter); ok {
		s.SetArg(v)
	}
}

// taskHandle is the executor's bookkeeping for a spawned [Future]. It is
// never exposed directly; callers interact with it only through
// [Waker], which the design notes (spec section 9) describe as a
// borrowed reference valid for the task's lifetime — safe here because
// the executor's lifetime strictly contains every task's lifetime.
type taskHandle struct {
	id       uint64
	fut      Future
	active   bool // the executor still considers this task live
	enqueued bool // currently sitting in the run queue
}
