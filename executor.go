package coopio

import "errors"

// ErrReentrantRun is returned by Run when called from within a Future's
// own Progress method on the same executor — there is only one run loop
// per executor and it cannot be re-entered.
var ErrReentrantRun = errors.New(Namespace + ": cannot call Run from within Run")

// Stats is a snapshot of an [Executor]'s lifetime counters. Reading it
// never requires synchronization: every [Executor] method, including
// Stats, is only ever called from the single goroutine driving Run, per
// spec section 5.
type Stats struct {
	Spawned    uint64
	Settled    uint64
	PollCycles uint64
}

// Executor is the cooperative scheduler described in spec section 4.1:
// a bounded FIFO run queue of tasks and a single owned [Reactor].
type Executor struct {
	queue   *runQueue
	reactor *Reactor
	logger  Logger
	nextID  uint64
	running bool
	closed  bool
	stats   Stats
}

// New returns an [Executor] whose run queue holds up to capacity pending
// tasks and which owns a freshly created [Reactor]. It panics if the
// reactor's underlying readiness multiplexer cannot be created — a
// condition callers cannot recover from short of not constructing a
// runtime at all, the same posture the teacher's eventloop.New takes
// toward unrecoverable OS resource exhaustion at startup.
func New(capacity int, opts ...Option) *Executor {
	if capacity < 0 {
		panic(Namespace + ": New: negative capacity")
	}
	e := &Executor{
		queue:  newRunQueue(capacity),
		logger: noopLogger{},
		nextID: 1,
	}
	for _, opt := range opts {
		opt.apply(e)
	}
	r, err := newReactor(e.logger)
	if err != nil {
		panic(Namespace + ": New: reactor: " + err.Error())
	}
	e.reactor = r
	return e
}

// Spawn marks f active and enqueues it. Spawn may be called both before
// Run and from within a Future's own Progress method during Run. If the
// run queue is already at capacity the call is a no-op: callers
// guarantee the simultaneously-pending count never exceeds the capacity
// given to New, per spec section 4.1.
func (e *Executor) Spawn(f Future) {
	if f == nil {
		return
	}
	t := &taskHandle{id: e.nextID, fut: f, active: true}
	e.nextID++
	e.stats.Spawned++
	t.enqueued = e.queue.Push(t)
	if !t.enqueued {
		e.logger.Log(LogEntry{Level: LevelWarn, Message: "spawn dropped: run queue at capacity", TaskID: t.id})
	}
}

// wake is the Waker re-enqueue operation. Waking a settled or
// already-enqueued task is a no-op, so a task is never progressed twice
// for one logical wake-up and never progressed after settlement.
func (e *Executor) wake(t *taskHandle) {
	if !t.active || t.enqueued {
		return
	}
	t.enqueued = e.queue.Push(t)
}

// Run drains the executor to quiescence: it repeatedly pops ready tasks
// and progresses them, blocking in the reactor's Poll only when the run
// queue is empty but registrations remain, per spec section 4.1's
// algorithm. Run returns nil once both the queue is empty and the
// reactor has no registrations. A poll failure is fatal and is returned
// to the caller; it is never silently retried.
func (e *Executor) Run() error {
	if e.running {
		return ErrReentrantRun
	}
	e.running = true
	defer func() { e.running = false }()

	for e.queue.Len() > 0 || e.reactor.NumRegistrations() > 0 {
		for e.queue.Len() > 0 {
			t := e.queue.Pop()
			t.enqueued = false
			if !t.active {
				continue
			}
			w := Waker{exec: e, task: t}
			state := t.fut.Progress(e.reactor, w)
			switch state {
			case Completed, Failed:
				t.active = false
				e.stats.Settled++
				e.logger.Log(LogEntry{Level: LevelDebug, Message: "task settled: " + state.String(), TaskID: t.id})
			case Pending:
				// the task has arranged its own resumption; nothing further to do.
			}
		}

		if e.reactor.NumRegistrations() > 0 {
			e.stats.PollCycles++
			if err := e.reactor.Poll(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases the executor's reactor and run queue storage. It must
// only be called after Run has returned, matching spec section 4.1's
// destroy contract.
func (e *Executor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.reactor.Close()
}

// Stats returns a snapshot of the executor's lifetime counters.
func (e *Executor) Stats() Stats {
	return e.stats
}
