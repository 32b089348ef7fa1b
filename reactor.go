package coopio

// Interest is a bitmask of readiness conditions a registration cares
// about, matching spec section 6's "at minimum READABLE and WRITABLE
// readiness" requirement.
type Interest uint8

const (
	// InterestRead indicates the descriptor is of interest when
	// readable.
	InterestRead Interest = 1 << iota
	// InterestWrite indicates the descriptor is of interest when
	// writable.
	InterestWrite
)

// registration is the reactor's bookkeeping for one registered file
// descriptor: the (interest-set, task-ref) pair from spec section 3,
// where the task-ref is represented by the Waker capability that
// re-enqueues it.
type registration struct {
	interest Interest
	waker    Waker
}

// Reactor is a thin abstraction over the host's level-triggered
// readiness multiplexer (epoll on Linux, kqueue on Darwin), as described
// in spec section 4.2. Registrations are unique per descriptor; the
// reactor does not auto-unregister on wake-up, so a task that is not yet
// satisfied after being woken is responsible for re-registering.
//
// Reactor is not safe for concurrent use — nothing in this package calls
// it from more than one goroutine, per spec section 5.
type Reactor struct {
	sys    reactorSys
	regs   map[int]*registration
	logger Logger
	closed bool
}

// newReactor opens the host readiness multiplexer and returns a ready
// Reactor.
func newReactor(logger Logger) (*Reactor, error) {
	r := &Reactor{regs: make(map[int]*registration), logger: logger}
	sys, err := newReactorSys()
	if err != nil {
		return nil, wrapReactorErr("init", err)
	}
	r.sys = sys
	return r, nil
}

// NumRegistrations reports how many descriptors currently have an active
// registration. The [Executor] uses this to decide whether to call Poll
// once its run queue is empty.
func (r *Reactor) NumRegistrations() int {
	return len(r.regs)
}

// Register adds an interest on fd, storing w so that subsequent
// readiness on fd re-enqueues w's task. Registering an fd that already
// has a registration fails with [ErrFDAlreadyRegistered]: spec section
// 4.2 permits "replaces" as an alternative, but this runtime requires an
// explicit Unregister first so a caller never silently loses track of
// which Waker owns a descriptor.
func (r *Reactor) Register(fd int, interest Interest, w Waker) error {
	if r.closed {
		return ErrReactorClosed
	}
	if w.IsZero() {
		return ErrZeroWaker
	}
	if _, exists := r.regs[fd]; exists {
		return ErrFDAlreadyRegistered
	}
	if err := r.sys.add(fd, interest); err != nil {
		return wrapReactorErr("register", err)
	}
	r.regs[fd] = &registration{interest: interest, waker: w}
	return nil
}

// Unregister removes the interest on fd. It is a no-op error,
// [ErrFDNotRegistered], to unregister a descriptor with no active
// registration.
func (r *Reactor) Unregister(fd int) error {
	if r.closed {
		return ErrReactorClosed
	}
	reg, exists := r.regs[fd]
	if !exists {
		return ErrFDNotRegistered
	}
	delete(r.regs, fd)
	if err := r.sys.del(fd, reg.interest); err != nil {
		return wrapReactorErr("unregister", err)
	}
	return nil
}

// Poll blocks with an infinite timeout until at least one registered
// descriptor becomes ready, then synchronously wakes every corresponding
// Waker. If there are no registrations it returns immediately without
// entering the underlying syscall, per spec section 4.2. A syscall
// failure is fatal to the reactor and is returned to the caller.
func (r *Reactor) Poll() error {
	if r.closed {
		return ErrReactorClosed
	}
	if len(r.regs) == 0 {
		return nil
	}
	events, err := r.sys.wait(-1)
	if err != nil {
		return wrapReactorErr("poll", err)
	}
	for _, ev := range events {
		reg, ok := r.regs[ev.fd]
		if !ok {
			continue // unregistered between the syscall returning and dispatch; benign.
		}
		r.logger.Log(LogEntry{Level: LevelDebug, Message: "poll woke task", FD: ev.fd, TaskID: reg.waker.taskID()})
		reg.waker.Wake()
	}
	return nil
}

// Close releases the underlying readiness multiplexer handle.
func (r *Reactor) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return wrapReactorErr("close", r.sys.close())
}

// taskID returns the waked task's id for logging, or 0 for a zero Waker.
func (w Waker) taskID() uint64 {
	if w.task == nil {
		return 0
	}
	return w.task.id
}

// pollEvent is a single readiness notification from the underlying
// multiplexer, normalized across epoll and kqueue.
type pollEvent struct {
	fd       int
	interest Interest
}

// reactorSys is the platform hook a Reactor delegates the raw readiness
// multiplexer syscalls to. Each platform file (reactor_linux.go,
// reactor_darwin.go) provides a concrete implementation and a
// constructor, newReactorSys.
type reactorSys interface {
	add(fd int, interest Interest) error
	del(fd int, interest Interest) error
	wait(timeoutMs int) ([]pollEvent, error)
	close() error
}
