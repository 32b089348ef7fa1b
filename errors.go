package coopio

import (
	"errors"
	"fmt"
)

// Namespace prefixes every sentinel error string in this package, matching
// the convention of prefixing error text with the owning package name.
const Namespace = "coopio"

// Standard errors.
var (
	// ErrNilFuture is the error carried by the Future a combinator
	// constructor returns when either inner future argument is nil.
	ErrNilFuture = errors.New(Namespace + ": nil future")

	// ErrAlreadySettled is the panic value a combinator raises if its own
	// Progress is called again after it has already returned Completed
	// or Failed. The executor itself never does this; it is a debug
	// assertion catching a contract violation by a caller holding a
	// stale reference to a settled Future.
	ErrAlreadySettled = errors.New(Namespace + ": future already settled")

	// ErrReactorClosed is returned by Register/Unregister/Poll once the
	// reactor has been closed.
	ErrReactorClosed = errors.New(Namespace + ": reactor closed")

	// ErrZeroWaker is returned by Register when given the zero Waker,
	// which would register interest that can never wake anything.
	ErrZeroWaker = errors.New(Namespace + ": zero waker")

	// ErrFDAlreadyRegistered is returned by Register when the
	// descriptor already has an active registration.
	ErrFDAlreadyRegistered = errors.New(Namespace + ": fd already registered")

	// ErrFDNotRegistered is returned by Unregister when the descriptor
	// has no active registration.
	ErrFDNotRegistered = errors.New(Namespace + ": fd not registered")
)

// ErrCode identifies which branch of a combinator produced a
// [CompositionError]. See spec section 7 for the taxonomy.
type ErrCode uint8

const (
	// ThenErrFut1 indicates the first inner future of a Then failed.
	ThenErrFut1 ErrCode = iota + 1
	// ThenErrFut2 indicates the second inner future of a Then failed.
	ThenErrFut2
	// JoinErrFut1 indicates only the first inner future of a Join failed.
	JoinErrFut1
	// JoinErrFut2 indicates only the second inner future of a Join failed.
	JoinErrFut2
	// JoinErrBoth indicates both inner futures of a Join failed.
	JoinErrBoth
	// SelectErrBothFailed indicates both inner futures of a Select failed.
	SelectErrBothFailed
)

// String renders the error code the way an error message or log field
// would want it.
func (c ErrCode) String() string {
	switch c {
	case ThenErrFut1:
		return "then_err_fut1"
	case ThenErrFut2:
		return "then_err_fut2"
	case JoinErrFut1:
		return "join_err_fut1"
	case JoinErrFut2:
		return "join_err_fut2"
	case JoinErrBoth:
		return "join_err_both"
	case SelectErrBothFailed:
		return "select_err_both_failed"
	default:
		return fmt.Sprintf("err_code(%d)", uint8(c))
	}
}

// CompositionError is the error a combinator's settled Future carries
// when it transitions to Failed. It names which branch failed (Code) and
// wraps the originating inner future's error (Cause) so callers can
// still errors.As/errors.Is through to the root cause.
type CompositionError struct {
	Code  ErrCode
	Cause error
}

// Error implements the error interface.
func (e *CompositionError) Error() string {
	if e.Cause == nil {
		return Namespace + ": " + e.Code.String()
	}
	return fmt.Sprintf("%s: %s: %v", Namespace, e.Code, e.Cause)
}

// Unwrap returns the originating inner future's error, for use with
// [errors.Is] and [errors.As].
func (e *CompositionError) Unwrap() error {
	return e.Cause
}

// wrapReactorErr wraps a syscall-level error from the underlying
// readiness multiplexer with package context.
func wrapReactorErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: reactor: %s: %w", Namespace, op, err)
}
