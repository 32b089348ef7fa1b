package coopio

// Then composes f1 and f2 into a [Future] that runs f1 to completion,
// seeds f2's argument from f1's result (via [ArgSetter], if f2 accepts
// one), then runs f2 — spec section 4.3.1's sequential combinator. f1 is
// never progressed again once it settles; f2 is never progressed before
// f1 completes successfully. Progressing the returned Future again after
// it has settled is a caller error and panics with [ErrAlreadySettled].
func Then(f1, f2 Future) Future {
	if f1 == nil || f2 == nil {
		return &failedFuture{err: ErrNilFuture}
	}
	return &thenFuture{fut1: f1, fut2: f2}
}

type thenFuture struct {
	fut1, fut2 Future
	fut1Done   bool
	settled    bool
	ok         any
	err        error
}

func (t *thenFuture) Progress(r *Reactor, w Waker) State {
	if t.settled {
		panic(ErrAlreadySettled)
	}
	if !t.fut1Done {
		switch t.fut1.Progress(r, w) {
		case Pending:
			return Pending
		case Failed:
			t.settled = true
			t.err = &CompositionError{Code: ThenErrFut1, Cause: t.fut1.Err()}
			return Failed
		case Completed:
			t.fut1Done = true
			setArg(t.fut2, t.fut1.Result())
		}
	}

	switch t.fut2.Progress(r, w) {
	case Pending:
		return Pending
	case Failed:
		t.settled = true
		t.err = &CompositionError{Code: ThenErrFut2, Cause: t.fut2.Err()}
		return Failed
	default: // Completed
		t.settled = true
		t.ok = t.fut2.Result()
		return Completed
	}
}

func (t *thenFuture) Result() any { return t.ok }
func (t *thenFuture) Err() error  { return t.err }
