//go:build linux || darwin

package coopio

import "golang.org/x/sys/unix"

// PipeRead is a leaf [Future] that performs one non-blocking read from
// fd into buf, registering [InterestRead] with the reactor on the first
// EAGAIN and unregistering before settling either way. It exists so this
// package's own tests can exercise the reactor-mediated wake-up paths
// (the pipe round-trip tests and spec section 8's S3) without an external
// test harness; spec
// section 1 treats leaf futures like this one as external collaborators
// a caller is free to replace with their own.
type PipeRead struct {
	fd         int
	buf        []byte
	registered bool
	n          int
	err        error
}

// NewPipeRead returns a PipeRead that will read into buf from fd. fd
// must already be in non-blocking mode.
func NewPipeRead(fd int, buf []byte) *PipeRead {
	return &PipeRead{fd: fd, buf: buf}
}

// Progress implements [Future].
func (p *PipeRead) Progress(r *Reactor, w Waker) State {
	n, err := unix.Read(p.fd, p.buf)
	switch {
	case err == unix.EAGAIN:
		if !p.registered {
			if regErr := r.Register(p.fd, InterestRead, w); regErr != nil {
				p.err = regErr
				return Failed
			}
			p.registered = true
		}
		return Pending
	case err != nil:
		p.unregister(r)
		p.err = err
		return Failed
	default:
		p.unregister(r)
		p.n = n
		return Completed
	}
}

func (p *PipeRead) unregister(r *Reactor) {
	if p.registered {
		_ = r.Unregister(p.fd)
		p.registered = false
	}
}

// Result returns the number of bytes read into buf.
func (p *PipeRead) Result() any { return p.n }

// Err returns the read error, if Progress returned Failed.
func (p *PipeRead) Err() error { return p.err }

// PipeWrite is the write-side mirror of [PipeRead]: a leaf [Future] that
// performs one non-blocking write of buf to fd, registering
// [InterestWrite] on the first EAGAIN.
type PipeWrite struct {
	fd         int
	buf        []byte
	registered bool
	n          int
	err        error
}

// NewPipeWrite returns a PipeWrite that will write buf to fd. fd must
// already be in non-blocking mode.
func NewPipeWrite(fd int, buf []byte) *PipeWrite {
	return &PipeWrite{fd: fd, buf: buf}
}

// Progress implements [Future].
func (p *PipeWrite) Progress(r *Reactor, w Waker) State {
	n, err := unix.Write(p.fd, p.buf)
	switch {
	case err == unix.EAGAIN:
		if !p.registered {
			if regErr := r.Register(p.fd, InterestWrite, w); regErr != nil {
				p.err = regErr
				return Failed
			}
			p.registered = true
		}
		return Pending
	case err != nil:
		p.unregister(r)
		p.err = err
		return Failed
	default:
		p.unregister(r)
		p.n = n
		return Completed
	}
}

func (p *PipeWrite) unregister(r *Reactor) {
	if p.registered {
		_ = r.Unregister(p.fd)
		p.registered = false
	}
}

// Result returns the number of bytes written.
func (p *PipeWrite) Result() any { return p.n }

// Err returns the write error, if Progress returned Failed.
func (p *PipeWrite) Err() error { return p.err }

// SelfPipeTimer is a leaf [Future] that models "wake me after the
// executor has processed one reactor event" without depending on a real
// wall-clock timer. On its first Progress call it registers read
// interest on its own read end and immediately writes a single byte to
// its own write end, so the reactor's very next poll cycle reports it
// readable; the second Progress call reads the byte back and completes.
// This exercises the same register-on-EAGAIN/wake/unregister path a real
// I/O leaf would, using the classic self-pipe trick instead of an
// external peer. r and w must be the two ends of the same pipe, both
// already in non-blocking mode.
type SelfPipeTimer struct {
	r, w       int
	registered bool
	err        error
}

// NewSelfPipeTimer returns a SelfPipeTimer over the given pipe ends.
func NewSelfPipeTimer(r, w int) *SelfPipeTimer {
	return &SelfPipeTimer{r: r, w: w}
}

// Progress implements [Future].
func (t *SelfPipeTimer) Progress(r *Reactor, w Waker) State {
	var buf [1]byte
	n, err := unix.Read(t.r, buf[:])
	switch {
	case err == unix.EAGAIN:
		if !t.registered {
			if regErr := r.Register(t.r, InterestRead, w); regErr != nil {
				t.err = regErr
				return Failed
			}
			t.registered = true
			if _, werr := unix.Write(t.w, []byte{1}); werr != nil && werr != unix.EAGAIN {
				t.unregister(r)
				t.err = werr
				return Failed
			}
		}
		return Pending
	case err != nil:
		t.unregister(r)
		t.err = err
		return Failed
	default:
		t.unregister(r)
		_ = n
		return Completed
	}
}

func (t *SelfPipeTimer) unregister(r *Reactor) {
	if t.registered {
		_ = r.Unregister(t.r)
		t.registered = false
	}
}

// Result returns nil; SelfPipeTimer carries no value, only completion.
func (t *SelfPipeTimer) Result() any { return nil }

// Err returns the underlying pipe error, if Progress returned Failed.
func (t *SelfPipeTimer) Err() error { return t.err }
