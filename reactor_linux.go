//go:build linux

package coopio

import "golang.org/x/sys/unix"

// epollSys implements reactorSys on Linux using epoll, following the
// same EpollCreate1/EpollCtl/EpollWait sequence as the teacher's
// poller_linux.go, generalized from its fixed-array fd table to the
// map-based registration table owned by [Reactor].
type epollSys struct {
	epfd     int
	eventBuf [256]unix.EpollEvent
}

func newReactorSys() (reactorSys, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollSys{epfd: epfd}, nil
}

func interestToEpoll(interest Interest) uint32 {
	var ev uint32
	if interest&InterestRead != 0 {
		ev |= unix.EPOLLIN
	}
	if interest&InterestWrite != 0 {
		ev |= unix.EPOLLOUT
	}
	return ev
}

func epollToInterest(mask uint32) Interest {
	var interest Interest
	if mask&(unix.EPOLLIN|unix.EPOLLERR|unix.EPOLLHUP) != 0 {
		interest |= InterestRead
	}
	if mask&(unix.EPOLLOUT|unix.EPOLLERR|unix.EPOLLHUP) != 0 {
		interest |= InterestWrite
	}
	return interest
}

func (s *epollSys) add(fd int, interest Interest) error {
	ev := unix.EpollEvent{Events: interestToEpoll(interest), Fd: int32(fd)}
	return unix.EpollCtl(s.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (s *epollSys) del(fd int, _ Interest) error {
	err := unix.EpollCtl(s.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err == unix.ENOENT {
		return nil
	}
	return err
}

func (s *epollSys) wait(timeoutMs int) ([]pollEvent, error) {
	n, err := unix.EpollWait(s.epfd, s.eventBuf[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	events := make([]pollEvent, n)
	for i := 0; i < n; i++ {
		events[i] = pollEvent{fd: int(s.eventBuf[i].Fd), interest: epollToInterest(s.eventBuf[i].Events)}
	}
	return events, nil
}

func (s *epollSys) close() error {
	return unix.Close(s.epfd)
}
