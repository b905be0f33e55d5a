//go:build linux

package wlkit

import (
	"github.com/bnema/wlturbo"

	"github.com/wlkit/wlkit/internal/debug"
)

// Linux input event codes for pointer buttons (input-event-codes.h).
const (
	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
	btnSide   = 0x113
	btnExtra  = 0x114
)

// xkb modifier mask bits for the default keymap layout.
const (
	xkbModShift = 1 << 0
	xkbModCaps  = 1 << 1
	xkbModCtrl  = 1 << 2
	xkbModAlt   = 1 << 3
	xkbModNum   = 1 << 4
	xkbModLogo  = 1 << 6
)

// waylandConn implements Conn over the wlturbo client. It binds the
// required globals at dial time and translates protocol events into the
// driver's capability callbacks. Protocol bring-up beyond that is
// deliberately thin; the driver only sees the Conn interface.
type waylandConn struct {
	app        *Application
	display    *wlturbo.Display
	ctx        *wlturbo.Context
	registry   *wlturbo.Registry
	compositor *wlturbo.Compositor
	seat       *wlturbo.Seat
	pointer    *wlturbo.Pointer
	touch      *wlturbo.Touch
	keyboard   *wlturbo.Keyboard

	// cursorName is the last cursor requested through SetCursor; attached
	// to the pointer on its next enter serial.
	cursorName string
	cursorSize int
}

func dialWayland(app *Application) (Conn, error) {
	display, err := wlturbo.Connect("")
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	c := &waylandConn{app: app, display: display, ctx: display.Context()}

	registry, err := display.GetRegistry()
	if err != nil {
		display.Close()
		return nil, &ConnectionError{Err: err}
	}
	c.registry = registry
	registry.AddGlobalHandler(c)
	registry.AddGlobalRemoveHandler(c)

	// First roundtrip delivers the globals, second settles the binds.
	if err := display.Roundtrip(); err != nil {
		display.Close()
		return nil, &ConnectionError{Err: err}
	}
	if err := display.Roundtrip(); err != nil {
		display.Close()
		return nil, &ConnectionError{Err: err}
	}

	if c.compositor == nil {
		display.Close()
		return nil, &BindError{Interface: "wl_compositor"}
	}
	if c.seat == nil {
		display.Close()
		return nil, &BindError{Interface: "wl_seat"}
	}
	return c, nil
}

// HandleRegistryGlobal binds the globals the backend needs as the
// compositor advertises them.
func (c *waylandConn) HandleRegistryGlobal(ev wlturbo.RegistryGlobalEvent) {
	switch ev.Interface {
	case "wl_compositor":
		comp := wlturbo.NewCompositor(c.ctx)
		c.registry.Bind(ev.Name, ev.Interface, ev.Version, comp)
		c.compositor = comp
	case "wl_seat":
		seat := wlturbo.NewSeat(c.ctx)
		c.registry.Bind(ev.Name, ev.Interface, ev.Version, seat)
		seat.AddCapabilitiesHandler(c)
		c.seat = seat
	case "wl_output":
		// Output geometry arrives after binding; register the output so
		// add/remove bookkeeping is correct either way.
		c.app.outputAdded(Output{ID: ev.Name, Scale: 1})
	}
}

// HandleRegistryGlobalRemove drops state for globals the compositor
// withdraws, outputs being the common case.
func (c *waylandConn) HandleRegistryGlobalRemove(ev wlturbo.RegistryGlobalRemoveEvent) {
	c.app.outputRemoved(ev.Name)
}

// HandleSeatCapabilities creates or releases the seat's input devices.
func (c *waylandConn) HandleSeatCapabilities(ev wlturbo.SeatCapabilitiesEvent) {
	caps := uint32(ev.Capabilities)
	c.app.seatCapabilities(caps)

	if caps&SeatPointer != 0 && c.pointer == nil {
		pointer, err := c.seat.GetPointer()
		if err != nil {
			debug.Log("wayland: get pointer: %v", err)
		} else {
			pointer.AddEnterHandler(c)
			pointer.AddLeaveHandler(c)
			pointer.AddMotionHandler(c)
			pointer.AddButtonHandler(c)
			pointer.AddAxisHandler(c)
			c.pointer = pointer
		}
	} else if caps&SeatPointer == 0 {
		c.pointer = nil
	}

	if caps&SeatTouch != 0 && c.touch == nil {
		touch, err := c.seat.GetTouch()
		if err != nil {
			debug.Log("wayland: get touch: %v", err)
		} else {
			touch.AddDownHandler(c)
			touch.AddUpHandler(c)
			touch.AddMotionHandler(c)
			c.touch = touch
		}
	} else if caps&SeatTouch == 0 {
		c.touch = nil
	}

	if caps&SeatKeyboard != 0 && c.keyboard == nil {
		keyboard, err := c.seat.GetKeyboard()
		if err != nil {
			debug.Log("wayland: get keyboard: %v", err)
		} else {
			keyboard.AddModifiersHandler(c)
			c.keyboard = keyboard
		}
	} else if caps&SeatKeyboard == 0 {
		c.keyboard = nil
	}
}

func (c *waylandConn) HandlePointerEnter(ev wlturbo.PointerEnterEvent) {
	c.app.pointerEnter(uint64(ev.Surface.Id()), Point{X: float64(ev.SurfaceX), Y: float64(ev.SurfaceY)})
}

func (c *waylandConn) HandlePointerLeave(ev wlturbo.PointerLeaveEvent) {
	c.app.pointerLeave(uint64(ev.Surface.Id()))
}

func (c *waylandConn) HandlePointerMotion(ev wlturbo.PointerMotionEvent) {
	c.app.pointerMotion(uint64(ev.Time), Point{X: float64(ev.SurfaceX), Y: float64(ev.SurfaceY)})
}

func (c *waylandConn) HandlePointerButton(ev wlturbo.PointerButtonEvent) {
	button := translateButton(ev.Button)
	if button == ButtonNone {
		debug.Log("wayland: unknown button code %#x", ev.Button)
		return
	}
	c.app.pointerButton(uint64(ev.Time), button, ev.State != 0)
}

func (c *waylandConn) HandlePointerAxis(ev wlturbo.PointerAxisEvent) {
	// Axis 0 is vertical scroll, 1 horizontal.
	var delta Vec2
	if ev.Axis == 0 {
		delta.Y = float64(ev.Value)
	} else {
		delta.X = float64(ev.Value)
	}
	c.app.pointerAxis(uint64(ev.Time), delta)
}

func (c *waylandConn) HandleTouchDown(ev wlturbo.TouchDownEvent) {
	c.app.touchDown(uint64(ev.Time), uint64(ev.Surface.Id()), ev.Id, Point{X: float64(ev.X), Y: float64(ev.Y)})
}

func (c *waylandConn) HandleTouchUp(ev wlturbo.TouchUpEvent) {
	c.app.touchUp(uint64(ev.Time), ev.Id)
}

func (c *waylandConn) HandleTouchMotion(ev wlturbo.TouchMotionEvent) {
	c.app.touchMotion(uint64(ev.Time), ev.Id, Point{X: float64(ev.X), Y: float64(ev.Y)})
}

func (c *waylandConn) HandleKeyboardModifiers(ev wlturbo.KeyboardModifiersEvent) {
	c.app.keyboardModifiers(translateModifiers(uint32(ev.ModsDepressed) | uint32(ev.ModsLocked)))
}

func translateButton(code uint32) PointerButton {
	switch code {
	case btnLeft:
		return ButtonLeft
	case btnRight:
		return ButtonRight
	case btnMiddle:
		return ButtonMiddle
	case btnSide:
		return ButtonX1
	case btnExtra:
		return ButtonX2
	default:
		return ButtonNone
	}
}

func translateModifiers(mask uint32) Modifiers {
	var mods Modifiers
	if mask&xkbModShift != 0 {
		mods |= ModShift
	}
	if mask&xkbModCaps != 0 {
		mods |= ModCapsLock
	}
	if mask&xkbModCtrl != 0 {
		mods |= ModCtrl
	}
	if mask&xkbModAlt != 0 {
		mods |= ModAlt
	}
	if mask&xkbModNum != 0 {
		mods |= ModNumLock
	}
	if mask&xkbModLogo != 0 {
		mods |= ModMeta
	}
	return mods
}

// Fd implements Conn.
func (c *waylandConn) Fd() int { return c.ctx.Fd() }

// Dispatch implements Conn.
func (c *waylandConn) Dispatch() error { return c.display.Dispatch() }

// Flush implements Conn.
func (c *waylandConn) Flush() error { return c.display.Flush() }

// Close implements Conn.
func (c *waylandConn) Close() error { return c.display.Close() }

// SetCursor implements cursorSetter. The name is attached to the pointer on
// its next enter; drawing the cursor image is the compositor's side of the
// cursor-shape handshake.
func (c *waylandConn) SetCursor(name string, size int) {
	c.cursorName = name
	c.cursorSize = size
}
