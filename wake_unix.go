//go:build unix

package wlkit

import (
	"time"

	"golang.org/x/sys/unix"
)

// wakeSource is the timer wake-up half of the poll set: armed at the next
// timer deadline, it makes its fd readable when that deadline passes. The
// loop consumes it as a take-once resource.
type wakeSource interface {
	Fd() int
	// Arm schedules a single wake-up after d, replacing any previous one.
	Arm(d time.Duration)
	// Disarm cancels the pending wake-up, if any. An empty timer queue
	// must not busy-wake the loop.
	Disarm()
	// drain consumes the readable state after a wake-up fired.
	drain()
	Close() error
}

// pipeWake is a self-pipe wake source. Arm starts a one-shot timer whose
// expiry writes a byte to the pipe; the loop polls the read end.
type pipeWake struct {
	r, w  int
	timer *time.Timer
}

func newPipeWake() (*pipeWake, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return nil, err
	}
	unix.SetNonblock(fds[0], true)
	unix.SetNonblock(fds[1], true)
	unix.CloseOnExec(fds[0])
	unix.CloseOnExec(fds[1])
	return &pipeWake{r: fds[0], w: fds[1]}, nil
}

func (p *pipeWake) Fd() int { return p.r }

func (p *pipeWake) Arm(d time.Duration) {
	if p.timer != nil {
		p.timer.Stop()
	}
	w := p.w
	p.timer = time.AfterFunc(d, func() {
		var b [1]byte
		unix.Write(w, b[:])
	})
}

func (p *pipeWake) Disarm() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.drain()
}

func (p *pipeWake) drain() {
	var buf [8]byte
	for {
		n, err := unix.Read(p.r, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

func (p *pipeWake) Close() error {
	if p.timer != nil {
		p.timer.Stop()
	}
	unix.Close(p.w)
	return unix.Close(p.r)
}
