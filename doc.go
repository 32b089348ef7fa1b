// Package coopio implements a single-threaded cooperative asynchronous
// execution runtime: an [Executor] that drives [Future] values to
// completion on a bounded FIFO run queue, a [Reactor] that parks the
// thread in a readiness-multiplexer syscall (epoll on Linux, kqueue on
// Darwin) when no task can make progress, and a small algebra of future
// combinators ([Then], [Join], [Select]) for composing leaf futures into
// larger computations.
//
// # Architecture
//
// Everything in this package runs on a single goroutine: the one that
// calls [Executor.Run]. A [Future] is polled via its Progress method,
// which must never block; a future that cannot make progress registers
// interest on a file descriptor with the [Reactor] (or otherwise arranges
// a future call to its [Waker]) and returns [Pending]. The executor
// re-enqueues a task only when its waker fires, never by polling it
// speculatively.
//
// # Usage
//
//	exec := coopio.New(64)
//	exec.Spawn(coopio.Then(fut1, fut2))
//	if err := exec.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Platform support
//
// The reactor is implemented using platform-native readiness
// multiplexers:
//   - Linux: epoll
//   - Darwin: kqueue
//
// No other platform is supported; attempting to build on one fails at
// compile time, same as depending directly on golang.org/x/sys/unix.
package coopio
