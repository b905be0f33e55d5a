//go:build unix

package wlkit

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/wlkit/wlkit/internal/debug"
)

// ErrLoopConsumed is returned by Run when the loop has already run once.
// Run takes the timer wake source at startup; the driver is not
// restartable without reconstructing the Application.
var ErrLoopConsumed = errors.New("wlkit: event loop already consumed its timer source")

// Run executes the event loop until Quit is called or the connection fails.
// handler may be nil. Blocks the calling goroutine; every window and timer
// callback is invoked from here.
func (a *Application) Run(handler AppHandler) error {
	if a.wakeTaken {
		return ErrLoopConsumed
	}
	a.wakeTaken = true
	a.handler = handler
	wake := a.wake
	defer wake.Close()

	debug.Log("run: event loop started")
	tick := a.cfg.tickInterval()

	for {
		connReady, wakeReady, err := pollTwo(a.conn.Fd(), wake.Fd(), tick)
		if err != nil {
			return fmt.Errorf("wlkit: poll: %w", err)
		}
		if connReady {
			if err := a.conn.Dispatch(); err != nil {
				return fmt.Errorf("wlkit: dispatch: %w", err)
			}
		}
		if wakeReady {
			wake.drain()
		}
		// Timers are drained every tick, not only when the wake source
		// fired, so a missed arm cannot stall delivery past one tick.
		a.handleTimerEvent(time.Now())

		for _, entry := range a.registry.Snapshot() {
			entry.Handle.RunDeferredTasks()
		}

		if err := a.conn.Flush(); err != nil {
			return fmt.Errorf("wlkit: flush: %w", err)
		}
		if a.shutdown {
			debug.Log("run: shutdown")
			return nil
		}
	}
}

// handleTimerEvent drains expired timers, delivers each to its owning
// window, then re-arms the wake source at the next deadline or disarms it
// when none remain.
//
// The expired slice is detached from the queue before any callback runs, so
// callbacks may schedule timers reentrantly.
func (a *Application) handleTimerEvent(now time.Time) {
	expired := a.timers.DrainExpired(now)
	for _, t := range expired {
		win, ok := a.registry.Lookup(t.ID())
		if !ok {
			// Windows may close with timers still in flight.
			debug.Log("timer %d fired for surface %d that no longer exists", t.Token(), t.ID())
			continue
		}
		win.deliverTimer(t.Token())
	}

	if earliest, ok := a.timers.PeekEarliest(); ok {
		a.wake.Arm(earliest.Deadline().Sub(now))
	} else {
		a.wake.Disarm()
	}
}

// pollTwo waits for either fd to become readable, bounded by timeout.
func pollTwo(fd1, fd2 int, timeout time.Duration) (ready1, ready2 bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(fd1)
	readFds.Set(fd2)

	maxFd := fd1
	if fd2 > maxFd {
		maxFd = fd2
	}

	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(maxFd+1, &readFds, nil, nil, &tv)
	if err != nil {
		if err == unix.EINTR {
			return false, false, nil
		}
		return false, false, err
	}
	if n == 0 {
		return false, false, nil
	}
	return readFds.IsSet(fd1), readFds.IsSet(fd2), nil
}
