package coopio

// Join composes f1 and f2 into a [Future] that completes once both
// inner futures have settled — spec section 4.3.2's concurrent-all
// combinator. Each inner future is progressed at most once per outer
// Progress call, and never again once it has settled. On success the
// outer result is f1's result (spec section 4.3.2 permits any
// deterministic combination); on any failure the error code identifies
// which side(s) failed. Progressing the returned Future again after it
// has settled is a caller error and panics with [ErrAlreadySettled].
func Join(f1, f2 Future) Future {
	if f1 == nil || f2 == nil {
		return &failedFuture{err: ErrNilFuture}
	}
	return &joinFuture{fut1: f1, fut2: f2, state1: Pending, state2: Pending}
}

type joinFuture struct {
	fut1, fut2     Future
	state1, state2 State
	settled        bool
	ok             any
	err            error
}

func (j *joinFuture) Progress(r *Reactor, w Waker) State {
	if j.settled {
		panic(ErrAlreadySettled)
	}
	if j.state1 == Pending {
		j.state1 = j.fut1.Progress(r, w)
	}
	if j.state2 == Pending {
		j.state2 = j.fut2.Progress(r, w)
	}
	if j.state1 == Pending || j.state2 == Pending {
		return Pending
	}

	j.settled = true
	switch {
	case j.state1 == Failed && j.state2 == Failed:
		j.err = &CompositionError{Code: JoinErrBoth, Cause: j.fut1.Err()}
		return Failed
	case j.state1 == Failed:
		j.err = &CompositionError{Code: JoinErrFut1, Cause: j.fut1.Err()}
		return Failed
	case j.state2 == Failed:
		j.err = &CompositionError{Code: JoinErrFut2, Cause: j.fut2.Err()}
		return Failed
	default:
		j.ok = j.fut1.Result()
		return Completed
	}
}

func (j *joinFuture) Result() any { return j.ok }
func (j *joinFuture) Err() error  { return j.err }
