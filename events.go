package wlkit

import (
	"math"
	"sort"

	"github.com/wlkit/wlkit/internal/debug"
)

// Seat capability bits, matching wl_seat::capability.
const (
	SeatPointer  uint32 = 1 << 0
	SeatKeyboard uint32 = 1 << 1
	SeatTouch    uint32 = 1 << 2
)

// Output describes one compositor output (a monitor).
type Output struct {
	ID    uint32
	Name  string
	Scale int32
	// Mode is the current pixel size of the output.
	Mode Size
}

// Pointer ids assigned to normalized event streams. A given id keeps its
// device variant for the whole stream: the mouse never becomes a pen.
const (
	mousePointerID     uint32 = 1
	penPointerID       uint32 = 2
	touchPointerIDBase uint32 = 16
)

// Double-click detection: a press within this interval and distance of the
// previous press of the same button raises the click count.
const (
	multiClickMillis   = 500
	multiClickDistance = 5.0
)

// pointerState accumulates wl_pointer state between events.
type pointerState struct {
	present   bool
	pos       Point
	buttons   PointerButtons
	modifiers Modifiers

	lastClickTime   uint64
	lastClickPos    Point
	lastClickButton PointerButton
	clickCount      uint8
}

// touchState tracks live touch contacts keyed by platform touch id.
type touchState struct {
	present bool
	points  map[int32]*touchPoint
	primary int32
}

type touchPoint struct {
	pos       Point
	surface   uint64
	pointerID uint32
}

// seatCapabilities reconciles the seat's advertised capabilities with the
// device state. Losing a capability resets the device so a re-added one
// starts clean.
func (a *Application) seatCapabilities(caps uint32) {
	hadPointer, hadTouch := a.pointer.present, a.touch.present

	if caps&SeatPointer != 0 && !hadPointer {
		debug.Log("seat: pointer capability added")
		a.pointer = pointerState{present: true}
	} else if caps&SeatPointer == 0 && hadPointer {
		debug.Log("seat: pointer capability removed")
		a.pointer = pointerState{}
	}

	if caps&SeatTouch != 0 && !hadTouch {
		debug.Log("seat: touch capability added")
		a.touch = touchState{present: true, points: make(map[int32]*touchPoint), primary: -1}
	} else if caps&SeatTouch == 0 && hadTouch {
		debug.Log("seat: touch capability removed")
		a.touch = touchState{}
	}
}

// keyboardModifiers records the seat's modifier state; subsequent pointer
// events carry it.
func (a *Application) keyboardModifiers(mods Modifiers) {
	a.pointer.modifiers = mods
}

// Outputs returns the known outputs ordered by id.
func (a *Application) Outputs() []Output {
	outs := make([]Output, 0, len(a.outputs))
	for _, o := range a.outputs {
		outs = append(outs, o)
	}
	sort.Slice(outs, func(i, j int) bool { return outs[i].ID < outs[j].ID })
	return outs
}

func (a *Application) outputAdded(o Output) {
	debug.Log("output %d added (%s)", o.ID, o.Name)
	a.outputs[o.ID] = o
}

func (a *Application) outputUpdated(o Output) {
	a.outputs[o.ID] = o
}

func (a *Application) outputRemoved(id uint32) {
	debug.Log("output %d removed", id)
	delete(a.outputs, id)
}

// DestroyWindow unregisters the surface and prunes it from the active
// stack. Idempotent; in-flight timers for the surface are skipped with a
// warning when they fire.
func (a *Application) DestroyWindow(id uint64) {
	debug.Log("app: surface %d unregistered", id)
	a.registry.Unregister(id)
}

// surfaceConfigured forwards a compositor-assigned size to the window.
func (a *Application) surfaceConfigured(id uint64, size Size) {
	win, ok := a.registry.Lookup(id)
	if !ok {
		debug.Log("configure for surface %d that no longer exists", id)
		return
	}
	if win.handler != nil {
		win.handler.Configure(size)
	}
}

// surfaceCloseRequested forwards a compositor close request to the window.
func (a *Application) surfaceCloseRequested(id uint64) {
	win, ok := a.registry.Lookup(id)
	if !ok {
		debug.Log("close request for surface %d that no longer exists", id)
		return
	}
	if win.handler != nil {
		win.handler.CloseRequested()
	}
}

// pointerEnter makes the entered surface current and records the position.
func (a *Application) pointerEnter(id uint64, pos Point) {
	a.registry.PushActive(id)
	a.pointer.pos = pos
}

// pointerLeave drops the surface from the active stack. Held buttons are
// cleared: release events for them will go to whichever surface the
// pointer enters next, and a stale held set would misreport Buttons there.
func (a *Application) pointerLeave(id uint64) {
	a.registry.PopActive(id)
	a.pointer.buttons.Clear()
}

func (a *Application) pointerMotion(timestamp uint64, pos Point) {
	a.pointer.pos = pos
	a.deliverPointer(PointerEvent{
		Timestamp: timestamp,
		Pos:       pos,
		Buttons:   a.pointer.buttons,
		Modifiers: a.pointer.modifiers,
		Button:    ButtonNone,
		IsPrimary: true,
		PointerID: mousePointerID,
		Info:      MouseInfo{},
	})
}

func (a *Application) pointerButton(timestamp uint64, button PointerButton, pressed bool) {
	p := &a.pointer
	var count uint8
	if pressed {
		p.buttons.Insert(button)
		if button == p.lastClickButton &&
			timestamp-p.lastClickTime < multiClickMillis &&
			distance(p.pos, p.lastClickPos) < multiClickDistance {
			p.clickCount++
		} else {
			p.clickCount = 1
		}
		p.lastClickTime = timestamp
		p.lastClickPos = p.pos
		p.lastClickButton = button
		count = p.clickCount
	} else {
		p.buttons.Remove(button)
		count = p.clickCount
	}
	a.deliverPointer(PointerEvent{
		Timestamp: timestamp,
		Pos:       p.pos,
		Buttons:   p.buttons,
		Modifiers: p.modifiers,
		Button:    button,
		Count:     count,
		IsPrimary: true,
		PointerID: mousePointerID,
		Info:      MouseInfo{},
	})
}

func (a *Application) pointerAxis(timestamp uint64, delta Vec2) {
	a.deliverPointer(PointerEvent{
		Timestamp: timestamp,
		Pos:       a.pointer.pos,
		Buttons:   a.pointer.buttons,
		Modifiers: a.pointer.modifiers,
		Button:    ButtonNone,
		IsPrimary: true,
		PointerID: mousePointerID,
		Info:      MouseInfo{WheelDelta: delta},
	})
}

// tabletToolMotion delivers a pen event. Pen hardware arrives through
// tablet extension protocols; the normalization path is shared with tests.
func (a *Application) tabletToolMotion(timestamp uint64, pos Point, info PenInfo) {
	a.deliverPointer(PointerEvent{
		Timestamp: timestamp,
		Pos:       pos,
		Buttons:   a.pointer.buttons,
		Modifiers: a.pointer.modifiers,
		Button:    ButtonNone,
		IsPrimary: true,
		PointerID: penPointerID,
		Info:      info,
	})
}

func (a *Application) tabletToolButton(timestamp uint64, pos Point, info PenInfo, button PointerButton, pressed bool) {
	if pressed {
		a.pointer.buttons.Insert(button)
	} else {
		a.pointer.buttons.Remove(button)
	}
	a.deliverPointer(PointerEvent{
		Timestamp: timestamp,
		Pos:       pos,
		Buttons:   a.pointer.buttons,
		Modifiers: a.pointer.modifiers,
		Button:    button,
		Count:     1,
		IsPrimary: true,
		PointerID: penPointerID,
		Info:      info,
	})
}

func (a *Application) touchDown(timestamp uint64, surfaceID uint64, touchID int32, pos Point) {
	t := &a.touch
	if t.points == nil {
		t.points = make(map[int32]*touchPoint)
		t.primary = -1
	}
	if t.primary == -1 {
		t.primary = touchID
	}
	pt := &touchPoint{pos: pos, surface: surfaceID, pointerID: touchPointerIDBase + uint32(touchID)}
	t.points[touchID] = pt
	a.registry.PushActive(surfaceID)
	a.deliverTouch(timestamp, pt, touchID, PointerButtons(0).With(ButtonLeft))
}

func (a *Application) touchMotion(timestamp uint64, touchID int32, pos Point) {
	pt, ok := a.touch.points[touchID]
	if !ok {
		debug.Log("touch motion for unknown contact %d", touchID)
		return
	}
	pt.pos = pos
	a.deliverTouch(timestamp, pt, touchID, PointerButtons(0).With(ButtonLeft))
}

func (a *Application) touchUp(timestamp uint64, touchID int32) {
	t := &a.touch
	pt, ok := t.points[touchID]
	if !ok {
		debug.Log("touch up for unknown contact %d", touchID)
		return
	}
	delete(t.points, touchID)
	if t.primary == touchID {
		t.primary = -1
	}
	a.deliverTouch(timestamp, pt, touchID, PointerButtons(0))
}

func (a *Application) deliverTouch(timestamp uint64, pt *touchPoint, touchID int32, buttons PointerButtons) {
	a.deliverPointer(PointerEvent{
		Timestamp: timestamp,
		Pos:       pt.pos,
		Buttons:   buttons,
		Modifiers: a.pointer.modifiers,
		Button:    ButtonNone,
		IsPrimary: a.touch.primary == touchID || a.touch.primary == -1,
		PointerID: pt.pointerID,
		Info:      DefaultTouchInfo(),
	})
}

// deliverPointer routes an event to the current active surface.
func (a *Application) deliverPointer(event PointerEvent) {
	win, ok := a.registry.CurrentActive()
	if !ok {
		debug.Log("pointer event with no active surface, dropped")
		return
	}
	win.deliverPointer(event)
}

func distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
