package coopio

// failedFuture is returned by a combinator constructor in place of a
// panic when an inner future argument is invalid (nil). It settles to
// Failed on its very first Progress call without touching a reactor or
// waker, so the caller still observes a well-formed Future rather than a
// crash — matching this codebase's general preference for returned
// errors over panics outside of constructor-time programmer errors that
// have no sane execution to continue (compare [New]'s panic on
// negative capacity, a case with no recoverable meaning at all).
type failedFuture struct {
	err error
}

func (f *failedFuture) Progress(*Reactor, Waker) State { return Failed }
func (f *failedFuture) Result() any                    { return nil }
func (f *failedFuture) Err() error                     { return f.err }
