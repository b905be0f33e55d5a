package wlkit

import (
	"time"

	"github.com/wlkit/wlkit/internal/debug"
)

// AppHandler receives application-level callbacks from the event loop.
// Implementations run on the loop's thread.
type AppHandler interface {
	// Command delivers an application command such as a menu activation.
	Command(id uint32)
}

// Application is the windowing-backend driver: it owns the platform
// connection, the timer queue and the surface registry, and runs the
// single-threaded event loop that feeds them.
//
// Everything here executes on one thread. There is no locking; reentrancy
// from handler callbacks is handled by snapshotting (registry iteration)
// and by detaching expired timers before their callbacks run.
type Application struct {
	conn     Conn
	registry *SurfaceRegistry
	timers   *TimerQueue
	cursors  *cursorCache
	cfg      Config
	handler  AppHandler

	// wake fires when the earliest timer deadline passes. Run consumes it;
	// the loop is not restartable afterwards.
	wake      wakeSource
	wakeTaken bool

	pointer pointerState
	touch   touchState
	outputs map[uint32]Output

	shutdown bool
}

// New connects to the Wayland display, binds the required globals and
// returns a ready driver. Construction failures (ConnectionError,
// BindError) abort startup; the caller may reconstruct and retry.
func New(opts ...Option) (*Application, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &Application{
		registry: NewSurfaceRegistry(),
		timers:   NewTimerQueue(),
		cfg:      cfg,
		outputs:  make(map[uint32]Output),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	a.cursors, err = newCursorCache(a.cfg.CursorTheme, a.cfg.CursorSize)
	if err != nil {
		return nil, err
	}
	if a.conn == nil {
		conn, err := dialWayland(a)
		if err != nil {
			return nil, err
		}
		a.conn = conn
	}
	a.wake, err = newPipeWake()
	if err != nil {
		a.conn.Close()
		return nil, &ConnectionError{Err: err}
	}
	debug.Log("app: initiated")
	return a, nil
}

// Quit asks the event loop to exit after the current tick. Idempotent and
// safe to call from any handler.
func (a *Application) Quit() {
	a.shutdown = true
}

// SetCursor asks the backend to show the named cursor. The resolved theme
// entry is cached; the protocol request goes out on the next flush.
func (a *Application) SetCursor(cursor Cursor) {
	entry := a.cursors.resolve(cursor)
	debug.Log("app: set cursor %q", entry.name)
	if cs, ok := a.conn.(cursorSetter); ok {
		cs.SetCursor(entry.name, a.cfg.CursorSize)
	}
}

// CreateWindow registers a window handler for the surface id assigned by
// the platform and returns its handle.
func (a *Application) CreateWindow(id uint64, handler WindowHandler) *WindowHandle {
	h := &WindowHandle{id: id, handler: handler, app: a}
	a.registry.Register(id, h)
	debug.Log("app: surface %d registered", id)
	return h
}

// scheduleTimer inserts a timer for the owning surface and re-arms the wake
// source if the new timer became the earliest deadline.
func (a *Application) scheduleTimer(id uint64, deadline time.Time) TimerToken {
	token := a.timers.Schedule(id, deadline)
	if earliest, ok := a.timers.PeekEarliest(); ok && earliest.Token() == token {
		a.wake.Arm(time.Until(deadline))
	}
	return token
}
