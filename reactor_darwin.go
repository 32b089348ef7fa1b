//go:build darwin

package coopio

import "golang.org/x/sys/unix"

// kqueueSys implements reactorSys on Darwin using kqueue, following the
// same Kqueue/Kevent sequence as the teacher's poller_darwin.go. A
// kqueue registration is per-filter (EVFILT_READ / EVFILT_WRITE) rather
// than a single combined event as on Linux, so add/del may submit up to
// two kevents for one [Interest].
type kqueueSys struct {
	kq       int
	eventBuf [256]unix.Kevent_t
}

func newReactorSys() (reactorSys, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, err
	}
	unix.CloseOnExec(kq)
	return &kqueueSys{kq: kq}, nil
}

func interestToKevents(fd int, interest Interest, flags uint16) []unix.Kevent_t {
	var kevents []unix.Kevent_t
	if interest&InterestRead != 0 {
		kevents = append(kevents, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: flags})
	}
	if interest&InterestWrite != 0 {
		kevents = append(kevents, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: flags})
	}
	return kevents
}

func keventToInterest(kev *unix.Kevent_t) Interest {
	switch kev.Filter {
	case unix.EVFILT_READ:
		return InterestRead
	case unix.EVFILT_WRITE:
		return InterestWrite
	default:
		return 0
	}
}

func (s *kqueueSys) add(fd int, interest Interest) error {
	kevents := interestToKevents(fd, interest, unix.EV_ADD|unix.EV_ENABLE)
	if len(kevents) == 0 {
		return nil
	}
	_, err := unix.Kevent(s.kq, kevents, nil, nil)
	return err
}

func (s *kqueueSys) del(fd int, interest Interest) error {
	kevents := interestToKevents(fd, interest, unix.EV_DELETE)
	if len(kevents) == 0 {
		return nil
	}
	_, err := unix.Kevent(s.kq, kevents, nil, nil)
	if err == unix.ENOENT {
		return nil
	}
	return err
}

func (s *kqueueSys) wait(timeoutMs int) ([]pollEvent, error) {
	var ts *unix.Timespec
	if timeoutMs >= 0 {
		ts = &unix.Timespec{Sec: int64(timeoutMs / 1000), Nsec: int64((timeoutMs % 1000) * 1000000)}
	}
	n, err := unix.Kevent(s.kq, nil, s.eventBuf[:], ts)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	events := make([]pollEvent, n)
	for i := 0; i < n; i++ {
		events[i] = pollEvent{fd: int(s.eventBuf[i].Ident), interest: keventToInterest(&s.eventBuf[i])}
	}
	return events, nil
}

func (s *kqueueSys) close() error {
	return unix.Close(s.kq)
}
