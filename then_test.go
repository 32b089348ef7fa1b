package coopio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// S1 from spec section 8: fut1 completes successfully, fut2 is seeded
// with fut1's result via ArgSetter and also completes successfully.
func TestThenHappyPath(t *testing.T) {
	fut1 := &immediateFuture{ok: 41}
	fut2 := &identityFuture{}

	exec := New(8)
	then := Then(fut1, fut2)
	exec.Spawn(then)
	require.NoError(t, exec.Run())

	require.NoError(t, then.Err())
	require.Equal(t, 41, then.Result())
	require.Equal(t, 1, fut1.calls)
	require.Equal(t, 1, fut2.calls)
}

// S2 from spec section 8: fut1 fails, so fut2 must never be progressed
// and the outer reports ThenErrFut1 wrapping fut1's error.
func TestThenFailsFirst(t *testing.T) {
	wantErr := errors.New("boom")
	fut1 := &immediateFuture{err: wantErr}
	fut2 := &identityFuture{}

	exec := New(8)
	then := Then(fut1, fut2)
	exec.Spawn(then)
	require.NoError(t, exec.Run())

	var compErr *CompositionError
	require.ErrorAs(t, then.Err(), &compErr)
	require.Equal(t, ThenErrFut1, compErr.Code)
	require.ErrorIs(t, compErr, wantErr)
	require.Equal(t, 0, fut2.calls)
}

func TestThenNilFuture(t *testing.T) {
	f := Then(nil, &identityFuture{})
	require.ErrorIs(t, f.Err(), ErrNilFuture)
}
