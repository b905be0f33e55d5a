package wlkit

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// fakeConn is a Conn backed by a self-pipe. Tests queue callbacks with
// queue(); the loop sees the fd become readable and Dispatch runs them,
// mimicking protocol events arriving on the wire.
type fakeConn struct {
	t *testing.T

	r, w    int
	pending []func()

	dispatchErr error
	flushErr    error

	flushes int
	closed  bool

	cursorName string
	cursorSize int
}

func newFakeConn(t *testing.T) *fakeConn {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	unix.SetNonblock(fds[0], true)
	unix.SetNonblock(fds[1], true)
	c := &fakeConn{t: t, r: fds[0], w: fds[1]}
	t.Cleanup(func() {
		if !c.closed {
			c.Close()
		}
	})
	return c
}

// queue stages a platform event: the callback runs on the next Dispatch.
func (c *fakeConn) queue(fn func()) {
	c.pending = append(c.pending, fn)
	var b [1]byte
	unix.Write(c.w, b[:])
}

func (c *fakeConn) Fd() int { return c.r }

func (c *fakeConn) Dispatch() error {
	var buf [16]byte
	for {
		n, err := unix.Read(c.r, buf[:])
		if n <= 0 || err != nil {
			break
		}
	}
	if c.dispatchErr != nil {
		return c.dispatchErr
	}
	pending := c.pending
	c.pending = nil
	for _, fn := range pending {
		fn()
	}
	return nil
}

func (c *fakeConn) Flush() error {
	c.flushes++
	return c.flushErr
}

func (c *fakeConn) Close() error {
	c.closed = true
	unix.Close(c.w)
	return unix.Close(c.r)
}

func (c *fakeConn) SetCursor(name string, size int) {
	c.cursorName = name
	c.cursorSize = size
}

// fakeWake records Arm/Disarm calls. Its fd never becomes readable; loop
// tests rely on the defensive per-tick timer drain.
type fakeWake struct {
	t *testing.T

	r, w    int
	arms    []time.Duration
	disarms int
	closed  bool
}

func newFakeWake(t *testing.T) *fakeWake {
	t.Helper()
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	unix.SetNonblock(fds[0], true)
	w := &fakeWake{t: t, r: fds[0], w: fds[1]}
	t.Cleanup(func() {
		if !w.closed {
			w.Close()
		}
	})
	return w
}

func (w *fakeWake) Fd() int             { return w.r }
func (w *fakeWake) Arm(d time.Duration) { w.arms = append(w.arms, d) }
func (w *fakeWake) Disarm()             { w.disarms++ }
func (w *fakeWake) drain()              {}

func (w *fakeWake) Close() error {
	w.closed = true
	unix.Close(w.w)
	return unix.Close(w.r)
}

// mockWindowHandler records everything delivered to a window.
type mockWindowHandler struct {
	timers        []TimerToken
	pointerEvents []PointerEvent
	configures    []Size
	closeRequests int

	onTimer func(TimerToken)
}

func (m *mockWindowHandler) Timer(token TimerToken) {
	m.timers = append(m.timers, token)
	if m.onTimer != nil {
		m.onTimer(token)
	}
}

func (m *mockWindowHandler) Pointer(event PointerEvent) {
	m.pointerEvents = append(m.pointerEvents, event)
}

func (m *mockWindowHandler) Configure(size Size) {
	m.configures = append(m.configures, size)
}

func (m *mockWindowHandler) CloseRequested() {
	m.closeRequests++
}

// newTestApp builds an Application on fakes, bypassing New so tests never
// touch a real display.
func newTestApp(t *testing.T) (*Application, *fakeConn, *fakeWake) {
	t.Helper()
	conn := newFakeConn(t)
	wake := newFakeWake(t)
	cursors, err := newCursorCache("default", 24)
	if err != nil {
		t.Fatalf("cursor cache: %v", err)
	}
	cfg := defaultConfig()
	cfg.TickMillis = 5
	return &Application{
		conn:     conn,
		registry: NewSurfaceRegistry(),
		timers:   NewTimerQueue(),
		cursors:  cursors,
		cfg:      cfg,
		outputs:  make(map[uint32]Output),
		wake:     wake,
	}, conn, wake
}
