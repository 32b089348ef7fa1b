package coopio

// selectDisc is the discriminator from spec section 3's Select state:
// {NONE, FUT1_OK, FUT2_OK, FUT1_FAILED, FUT2_FAILED, BOTH_FAILED}.
type selectDisc uint8

const (
	selNone selectDisc = iota
	selFut1OK
	selFut2OK
	selFut1Failed
	selFut2Failed
	selBothFailed
)

// Select composes f1 and f2 into a [Future] that completes as soon as
// either inner future completes successfully, abandoning the other —
// spec section 4.3.3's concurrent-first-success combinator. Once a side
// has failed or been abandoned it is never progressed again. If both
// sides fail, the outer fails with a [CompositionError] whose Code is
// [SelectErrBothFailed] and whose Cause is f1's error, whichever side
// failed last. Progressing the returned
// Future again after it has settled is a caller error and panics with
// [ErrAlreadySettled].
func Select(f1, f2 Future) Future {
	if f1 == nil || f2 == nil {
		return &failedFuture{err: ErrNilFuture}
	}
	return &selectFuture{fut1: f1, fut2: f2}
}

type selectFuture struct {
	fut1, fut2 Future
	disc       selectDisc
	ok         any
	err        error
}

func (s *selectFuture) Progress(r *Reactor, w Waker) State {
	switch s.disc {
	case selFut1OK, selFut2OK, selBothFailed:
		panic(ErrAlreadySettled)
	}

	if s.disc != selFut1Failed {
		switch s.fut1.Progress(r, w) {
		case Completed:
			s.disc = selFut1OK
			s.ok = s.fut1.Result()
			return Completed
		case Failed:
			if s.disc == selFut2Failed {
				s.settleBothFailed()
				return Failed
			}
			s.disc = selFut1Failed
		case Pending:
		}
	}

	if s.disc != selFut2Failed && s.disc != selFut1OK {
		switch s.fut2.Progress(r, w) {
		case Completed:
			s.disc = selFut2OK
			s.ok = s.fut2.Result()
			return Completed
		case Failed:
			if s.disc == selFut1Failed {
				s.settleBothFailed()
				return Failed
			}
			s.disc = selFut2Failed
		case Pending:
		}
	}

	if s.disc == selBothFailed {
		return Failed
	}
	return Pending
}

func (s *selectFuture) settleBothFailed() {
	s.disc = selBothFailed
	s.err = &CompositionError{Code: SelectErrBothFailed, Cause: s.fut1.Err()}
}

func (s *selectFuture) Result() any { return s.ok }
func (s *selectFuture) Err() error  { return s.err }
