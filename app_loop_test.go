//go:build unix

package wlkit

import (
	"errors"
	"testing"
	"time"
)

func TestRun_QuitExitsLoop(t *testing.T) {
	app, conn, _ := newTestApp(t)
	conn.queue(func() { app.Quit() })

	done := make(chan error, 1)
	go func() { done <- app.Run(nil) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not exit after Quit")
	}
	if conn.flushes == 0 {
		t.Error("loop never flushed the connection")
	}
}

func TestRun_SecondCallFails(t *testing.T) {
	app, conn, _ := newTestApp(t)
	conn.queue(func() { app.Quit() })

	if err := app.Run(nil); err != nil {
		t.Fatalf("first Run = %v", err)
	}
	if err := app.Run(nil); !errors.Is(err, ErrLoopConsumed) {
		t.Fatalf("second Run = %v, want ErrLoopConsumed", err)
	}
}

func TestRun_DispatchErrorIsFatal(t *testing.T) {
	app, conn, _ := newTestApp(t)
	cause := errors.New("connection reset")
	conn.queue(func() {})
	conn.dispatchErr = cause

	err := app.Run(nil)
	if !errors.Is(err, cause) {
		t.Fatalf("Run = %v, want wrapped %v", err, cause)
	}
}

func TestRun_FlushErrorIsFatal(t *testing.T) {
	app, conn, _ := newTestApp(t)
	cause := errors.New("broken pipe")
	conn.flushErr = cause

	err := app.Run(nil)
	if !errors.Is(err, cause) {
		t.Fatalf("Run = %v, want wrapped %v", err, cause)
	}
}

func TestRun_DeliversExpiredTimer(t *testing.T) {
	app, conn, _ := newTestApp(t)
	handler := &mockWindowHandler{}
	win := app.CreateWindow(100, handler)

	var token TimerToken
	conn.queue(func() {
		token = win.ScheduleTimer(time.Now().Add(10 * time.Millisecond))
	})
	handler.onTimer = func(TimerToken) { app.Quit() }

	done := make(chan error, 1)
	go func() { done <- app.Run(nil) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
	if len(handler.timers) != 1 || handler.timers[0] != token {
		t.Fatalf("delivered timers = %v, want [%d]", handler.timers, token)
	}
}

func TestRun_RunsDeferredTasks(t *testing.T) {
	app, conn, _ := newTestApp(t)
	win := app.CreateWindow(100, &mockWindowHandler{})

	ran := false
	conn.queue(func() {
		win.Defer(func() {
			ran = true
			app.Quit()
		})
	})

	done := make(chan error, 1)
	go func() { done <- app.Run(nil) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("deferred task never ran")
	}
	if !ran {
		t.Fatal("deferred task flag not set")
	}
}

// A timer whose surface was destroyed before the deadline is skipped, and
// the remaining timers still deliver.
func TestHandleTimerEvent_StaleSurfaceSkipped(t *testing.T) {
	app, _, _ := newTestApp(t)
	live := &mockWindowHandler{}
	app.CreateWindow(100, live)
	app.CreateWindow(101, &mockWindowHandler{})

	base := time.Now()
	app.timers.Schedule(101, base.Add(time.Millisecond))
	tok := app.timers.Schedule(100, base.Add(2*time.Millisecond))
	app.DestroyWindow(101)

	app.handleTimerEvent(base.Add(5 * time.Millisecond))

	if len(live.timers) != 1 || live.timers[0] != tok {
		t.Fatalf("live window timers = %v, want [%d]", live.timers, tok)
	}
}

func TestHandleTimerEvent_RearmsAtNextDeadline(t *testing.T) {
	app, _, wake := newTestApp(t)
	app.CreateWindow(100, &mockWindowHandler{})

	base := time.Now()
	app.timers.Schedule(100, base.Add(time.Millisecond))
	app.timers.Schedule(100, base.Add(20*time.Millisecond))

	app.handleTimerEvent(base.Add(5 * time.Millisecond))

	if len(wake.arms) == 0 {
		t.Fatal("wake source not re-armed with a timer pending")
	}
	got := wake.arms[len(wake.arms)-1]
	if got != 15*time.Millisecond {
		t.Errorf("re-armed for %v, want 15ms", got)
	}
	if wake.disarms != 0 {
		t.Error("wake source disarmed with a timer pending")
	}
}

func TestHandleTimerEvent_DisarmsWhenQueueEmpty(t *testing.T) {
	app, _, wake := newTestApp(t)
	app.CreateWindow(100, &mockWindowHandler{})

	base := time.Now()
	app.timers.Schedule(100, base.Add(time.Millisecond))
	app.handleTimerEvent(base.Add(5 * time.Millisecond))

	if wake.disarms != 1 {
		t.Fatalf("disarms = %d, want 1", wake.disarms)
	}
}

// Timer callbacks may schedule follow-up timers; the reentrant insert lands
// in the queue and re-arms the wake source.
func TestHandleTimerEvent_ReentrantSchedule(t *testing.T) {
	app, _, wake := newTestApp(t)
	handler := &mockWindowHandler{}
	win := app.CreateWindow(100, handler)

	base := time.Now()
	handler.onTimer = func(TimerToken) {
		win.ScheduleTimer(base.Add(time.Hour))
	}
	app.timers.Schedule(100, base.Add(time.Millisecond))

	app.handleTimerEvent(base.Add(5 * time.Millisecond))

	if app.timers.Len() != 1 {
		t.Fatalf("queue Len = %d after reentrant schedule, want 1", app.timers.Len())
	}
	if len(wake.arms) == 0 {
		t.Fatal("wake source not armed for the reentrant timer")
	}
}

// scheduleTimer only re-arms when the new timer becomes the earliest;
// arming for a later deadline would delay the earlier one.
func TestScheduleTimer_ArmsOnlyWhenEarliest(t *testing.T) {
	app, _, wake := newTestApp(t)
	win := app.CreateWindow(100, &mockWindowHandler{})

	win.ScheduleTimer(time.Now().Add(10 * time.Millisecond))
	if len(wake.arms) != 1 {
		t.Fatalf("arms = %d after first schedule, want 1", len(wake.arms))
	}

	win.ScheduleTimer(time.Now().Add(time.Hour))
	if len(wake.arms) != 1 {
		t.Fatalf("arms = %d after later schedule, want 1", len(wake.arms))
	}

	win.ScheduleTimer(time.Now().Add(time.Millisecond))
	if len(wake.arms) != 2 {
		t.Fatalf("arms = %d after earlier schedule, want 2", len(wake.arms))
	}
}

func TestWindowHandle_CancelTimer(t *testing.T) {
	app, _, _ := newTestApp(t)
	handler := &mockWindowHandler{}
	win := app.CreateWindow(100, handler)

	base := time.Now()
	tok := win.ScheduleTimer(base.Add(time.Millisecond))
	if !win.CancelTimer(tok) {
		t.Fatal("CancelTimer of a pending token returned false")
	}

	app.handleTimerEvent(base.Add(time.Second))
	if len(handler.timers) != 0 {
		t.Fatalf("cancelled timer delivered: %v", handler.timers)
	}
}

func TestRunDeferredTasks_DetachesBeforeRunning(t *testing.T) {
	app, _, _ := newTestApp(t)
	win := app.CreateWindow(100, &mockWindowHandler{})

	var order []int
	win.Defer(func() {
		order = append(order, 1)
		// Work deferred from inside a task waits for the next flush.
		win.Defer(func() { order = append(order, 2) })
	})

	win.RunDeferredTasks()
	if len(order) != 1 {
		t.Fatalf("first flush ran %d tasks, want 1", len(order))
	}
	win.RunDeferredTasks()
	if len(order) != 2 || order[1] != 2 {
		t.Fatalf("order = %v, want [1 2]", order)
	}
}

func TestPollTwo(t *testing.T) {
	a := newFakeConn(t)
	b := newFakeConn(t)

	ready1, ready2, err := pollTwo(a.Fd(), b.Fd(), time.Millisecond)
	if err != nil || ready1 || ready2 {
		t.Fatalf("idle poll = (%v, %v, %v), want all false", ready1, ready2, err)
	}

	a.queue(func() {})
	ready1, ready2, err = pollTwo(a.Fd(), b.Fd(), time.Second)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if !ready1 || ready2 {
		t.Fatalf("poll = (%v, %v), want (true, false)", ready1, ready2)
	}
}
