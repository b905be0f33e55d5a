package wlkit

import "time"

// WindowHandler receives events for a single window. Implementations run on
// the driver's thread; they may schedule timers, mutate the registry and
// queue deferred work reentrantly.
type WindowHandler interface {
	// Timer delivers a fired timer previously scheduled through the
	// window's handle.
	Timer(token TimerToken)

	// Pointer delivers a normalized pointer event.
	Pointer(event PointerEvent)

	// Configure reports a compositor-assigned size for the surface.
	Configure(size Size)

	// CloseRequested reports that the compositor asked the window to
	// close. The window decides whether to actually destroy its surface.
	CloseRequested()
}

// WindowHandle is the driver-side state for one live surface. Handles are
// shared: the registry, in-flight events and application code may all hold
// the same *WindowHandle.
type WindowHandle struct {
	id       uint64
	handler  WindowHandler
	app      *Application
	deferred []func()
}

// ID returns the platform surface id.
func (h *WindowHandle) ID() uint64 { return h.id }

// ScheduleTimer requests a callback to the window's handler at deadline,
// returning a token that the later Timer delivery will carry.
func (h *WindowHandle) ScheduleTimer(deadline time.Time) TimerToken {
	return h.app.scheduleTimer(h.id, deadline)
}

// CancelTimer cancels a pending timer scheduled through this handle.
func (h *WindowHandle) CancelTimer(token TimerToken) bool {
	return h.app.timers.Cancel(token)
}

// SetCursor asks the backend to show cursor while the pointer is over this
// window.
func (h *WindowHandle) SetCursor(cursor Cursor) {
	h.app.SetCursor(cursor)
}

// Defer queues work to run outside the current dispatch, at the end of the
// loop tick. Handlers use this for mutations that must not happen inside
// the callback stack that observed them.
func (h *WindowHandle) Defer(task func()) {
	h.deferred = append(h.deferred, task)
}

// RunDeferredTasks flushes the deferred queue. The queue is detached first,
// so tasks may defer further work for the next tick without looping.
func (h *WindowHandle) RunDeferredTasks() {
	tasks := h.deferred
	h.deferred = nil
	for _, task := range tasks {
		task()
	}
}

func (h *WindowHandle) deliverTimer(token TimerToken) {
	if h.handler != nil {
		h.handler.Timer(token)
	}
}

func (h *WindowHandle) deliverPointer(event PointerEvent) {
	if h.handler != nil {
		h.handler.Pointer(event)
	}
}
