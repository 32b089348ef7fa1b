package coopio

import (
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func skipUnlessSupportedPlatform(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("reactor only implemented for linux and darwin")
	}
}

func nonblockingPipe(t *testing.T) (r, w *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	require.NoError(t, unix.SetNonblock(int(r.Fd()), true))
	require.NoError(t, unix.SetNonblock(int(w.Fd()), true))
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return r, w
}

func TestReactorRegisterUnregisterTracksCount(t *testing.T) {
	skipUnlessSupportedPlatform(t)
	r, err := newReactor(noopLogger{})
	require.NoError(t, err)
	defer r.Close()

	rf, wf := nonblockingPipe(t)
	_ = wf

	w := Waker{exec: New(1), task: &taskHandle{id: 1, active: true}}

	require.Equal(t, 0, r.NumRegistrations())
	require.NoError(t, r.Register(int(rf.Fd()), InterestRead, w))
	require.Equal(t, 1, r.NumRegistrations())

	require.ErrorIs(t, r.Register(int(rf.Fd()), InterestRead, w), ErrFDAlreadyRegistered)

	require.NoError(t, r.Unregister(int(rf.Fd())))
	require.Equal(t, 0, r.NumRegistrations())
	require.ErrorIs(t, r.Unregister(int(rf.Fd())), ErrFDNotRegistered)
}

func TestReactorRegisterRejectsZeroWaker(t *testing.T) {
	skipUnlessSupportedPlatform(t)
	r, err := newReactor(noopLogger{})
	require.NoError(t, err)
	defer r.Close()

	rf, _ := nonblockingPipe(t)
	require.ErrorIs(t, r.Register(int(rf.Fd()), InterestRead, Waker{}), ErrZeroWaker)
	require.Equal(t, 0, r.NumRegistrations())
}

func TestReactorPollWakesOnReadability(t *testing.T) {
	skipUnlessSupportedPlatform(t)
	r, err := newReactor(noopLogger{})
	require.NoError(t, err)
	defer r.Close()

	rf, wf := nonblockingPipe(t)

	exec := New(1)
	task := &taskHandle{id: 1, active: true}
	w := Waker{exec: exec, task: task}
	require.NoError(t, r.Register(int(rf.Fd()), InterestRead, w))

	go func() {
		time.Sleep(10 * time.Millisecond)
		_, _ = wf.Write([]byte("hi"))
	}()

	require.NoError(t, r.Poll())
	require.True(t, task.enqueued)
}

func TestReactorPollReturnsImmediatelyWithNoRegistrations(t *testing.T) {
	skipUnlessSupportedPlatform(t)
	r, err := newReactor(noopLogger{})
	require.NoError(t, err)
	defer r.Close()

	done := make(chan error, 1)
	go func() { done <- r.Poll() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Poll blocked despite having no registrations")
	}
}

func TestReactorOperationsFailAfterClose(t *testing.T) {
	skipUnlessSupportedPlatform(t)
	r, err := newReactor(noopLogger{})
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	rf, _ := nonblockingPipe(t)
	require.ErrorIs(t, r.Register(int(rf.Fd()), InterestRead, Waker{}), ErrReactorClosed)
	require.ErrorIs(t, r.Unregister(int(rf.Fd())), ErrReactorClosed)
	require.ErrorIs(t, r.Poll(), ErrReactorClosed)
}
