package coopio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestPipeReadWriteRoundTrip(t *testing.T) {
	skipUnlessSupportedPlatform(t)
	rf, wf := nonblockingPipe(t)

	exec := New(8)
	readBuf := make([]byte, 5)
	read := NewPipeRead(int(rf.Fd()), readBuf)
	write := NewPipeWrite(int(wf.Fd()), []byte("hello"))

	exec.Spawn(write)
	exec.Spawn(read)
	require.NoError(t, exec.Run())

	require.NoError(t, write.Err())
	require.Equal(t, 5, write.Result())
	require.NoError(t, read.Err())
	require.Equal(t, 5, read.Result())
	require.Equal(t, "hello", string(readBuf))
}

func TestPipeReadRegistersOnEAGAINThenCompletes(t *testing.T) {
	skipUnlessSupportedPlatform(t)
	rf, wf := nonblockingPipe(t)

	exec := New(8)
	buf := make([]byte, 3)
	read := NewPipeRead(int(rf.Fd()), buf)
	exec.Spawn(read)

	// The write is delayed so that the read first observes EAGAIN and
	// registers with the reactor, forcing Run through a real Poll cycle.
	go func() {
		time.Sleep(20 * time.Millisecond)
		_, _ = wf.Write([]byte("abc"))
	}()

	require.NoError(t, exec.Run())
	require.NoError(t, read.Err())
	require.Equal(t, 3, read.Result())
}

func TestSelfPipeTimerCompletesAfterOneReactorEvent(t *testing.T) {
	skipUnlessSupportedPlatform(t)
	rf, wf := nonblockingPipe(t)

	exec := New(8)
	timer := NewSelfPipeTimer(int(rf.Fd()), int(wf.Fd()))
	exec.Spawn(timer)

	require.NoError(t, exec.Run())
	require.NoError(t, timer.Err())
	require.Equal(t, uint64(1), exec.Stats().PollCycles)
}

func TestPipeReadFailsOnBadDescriptor(t *testing.T) {
	skipUnlessSupportedPlatform(t)
	read := NewPipeRead(-1, make([]byte, 1))
	exec := New(8)
	exec.Spawn(read)
	require.NoError(t, exec.Run())
	require.ErrorIs(t, read.Err(), unix.EBADF)
}
