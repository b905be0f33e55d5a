package wlkit

import "fmt"

// PointerButton identifies a single pointer button. The enumeration is closed:
// it covers mouse buttons, touch contact and the pen barrel/eraser buttons.
type PointerButton uint8

const (
	// ButtonNone represents no button. Must be first (== 0) so the bitset
	// shift formula makes inserting it a no-op.
	ButtonNone PointerButton = iota
	// ButtonLeft is the left mouse button, touch contact, or pen contact.
	ButtonLeft
	// ButtonRight is the right mouse button or pen barrel button.
	ButtonRight
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonX1 is the back mouse button.
	ButtonX1
	// ButtonX2 is the forward mouse button.
	ButtonX2
	// ButtonEraser is the pen eraser button.
	ButtonEraser
)

var buttonNames = map[PointerButton]string{
	ButtonNone:   "None",
	ButtonLeft:   "Left",
	ButtonRight:  "Right",
	ButtonMiddle: "Middle",
	ButtonX1:     "X1",
	ButtonX2:     "X2",
	ButtonEraser: "Eraser",
}

func (b PointerButton) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("PointerButton(%d)", uint8(b))
}

// IsLeft reports whether this is ButtonLeft.
func (b PointerButton) IsLeft() bool { return b == ButtonLeft }

// IsRight reports whether this is ButtonRight.
func (b PointerButton) IsRight() bool { return b == ButtonRight }

// IsMiddle reports whether this is ButtonMiddle.
func (b PointerButton) IsMiddle() bool { return b == ButtonMiddle }

// IsX1 reports whether this is ButtonX1.
func (b PointerButton) IsX1() bool { return b == ButtonX1 }

// IsX2 reports whether this is ButtonX2.
func (b PointerButton) IsX2() bool { return b == ButtonX2 }

// IsEraser reports whether this is ButtonEraser.
func (b PointerButton) IsEraser() bool { return b == ButtonEraser }

// bit is the set mask for the button. ButtonNone maps to an empty mask, so
// inserting or removing it never changes a set.
func (b PointerButton) bit() uint8 {
	return min(1, uint8(b)) << uint8(b)
}

// PointerButtons is a set of PointerButton values. It is a plain value type:
// copy it freely, compare it with ==.
type PointerButtons uint8

// Insert adds button to the set.
func (s *PointerButtons) Insert(button PointerButton) {
	*s |= PointerButtons(button.bit())
}

// Remove deletes button from the set.
func (s *PointerButtons) Remove(button PointerButton) {
	*s &^= PointerButtons(button.bit())
}

// With returns a copy of the set with button added.
func (s PointerButtons) With(button PointerButton) PointerButtons {
	return s | PointerButtons(button.bit())
}

// Without returns a copy of the set with button removed.
func (s PointerButtons) Without(button PointerButton) PointerButtons {
	return s &^ PointerButtons(button.bit())
}

// Contains reports whether button is in the set.
func (s PointerButtons) Contains(button PointerButton) bool {
	return s&PointerButtons(button.bit()) != 0
}

// IsEmpty reports whether no buttons are held.
func (s PointerButtons) IsEmpty() bool { return s == 0 }

// IsSuperset reports whether every button in other is also in s.
func (s PointerButtons) IsSuperset(other PointerButtons) bool {
	return s&other == other
}

// HasLeft reports whether ButtonLeft is in the set.
func (s PointerButtons) HasLeft() bool { return s.Contains(ButtonLeft) }

// HasRight reports whether ButtonRight is in the set.
func (s PointerButtons) HasRight() bool { return s.Contains(ButtonRight) }

// HasMiddle reports whether ButtonMiddle is in the set.
func (s PointerButtons) HasMiddle() bool { return s.Contains(ButtonMiddle) }

// HasX1 reports whether ButtonX1 is in the set.
func (s PointerButtons) HasX1() bool { return s.Contains(ButtonX1) }

// HasX2 reports whether ButtonX2 is in the set.
func (s PointerButtons) HasX2() bool { return s.Contains(ButtonX2) }

// HasEraser reports whether ButtonEraser is in the set.
func (s PointerButtons) HasEraser() bool { return s.Contains(ButtonEraser) }

// Extend adds all buttons in other to the set.
func (s *PointerButtons) Extend(other PointerButtons) { *s |= other }

// Union returns the buttons present in either set.
func (s PointerButtons) Union(other PointerButtons) PointerButtons { return s | other }

// Clear removes all buttons from the set.
func (s *PointerButtons) Clear() { *s = 0 }

// Count returns the number of held buttons.
func (s PointerButtons) Count() int {
	n := 0
	for v := uint8(s); v != 0; v &= v - 1 {
		n++
	}
	return n
}

func (s PointerButtons) String() string {
	return fmt.Sprintf("PointerButtons(%06b)", uint8(s)>>1)
}

// PointerInfo carries the device-specific portion of a pointer event. The
// implementations form a closed set: MouseInfo, PenInfo and TouchInfo.
type PointerInfo interface {
	isPointerInfo()
}

// MouseInfo is the device-specific info for mouse pointers.
type MouseInfo struct {
	// WheelDelta is the scroll distance of this event, if any.
	WheelDelta Vec2
}

// PenInfo is the device-specific info for pen/stylus pointers.
type PenInfo struct {
	// Pressure is in [0, 1]. Hardware without pressure support reports 0.5
	// while in the active-buttons state and 0 otherwise.
	Pressure float32
	// TangentialPressure (barrel pressure) is in [-1, 1].
	TangentialPressure float32
	// Inclination is the stylus orientation; see Inclination for the dual
	// tilt versus azimuth/altitude representation.
	Inclination Inclination
	// Twist is the clockwise rotation of the pen around its own axis, in
	// degrees in [0, 359].
	Twist uint32
}

// TouchInfo is the device-specific info for touch pointers.
type TouchInfo struct {
	// ContactGeometry is the size of the touch contact ellipse.
	ContactGeometry Size
	// Pressure is in [0, 1]; only meaningful when HasPressure is set.
	Pressure    float32
	HasPressure bool
}

func (MouseInfo) isPointerInfo() {}
func (PenInfo) isPointerInfo()   {}
func (TouchInfo) isPointerInfo() {}

// DefaultTouchInfo returns touch info for hardware that reports no contact
// geometry or pressure of its own.
func DefaultTouchInfo() TouchInfo {
	return TouchInfo{ContactGeometry: Size{Width: 1, Height: 1}}
}

// PointerEvent is a normalized input event covering mouse, pen and touch
// hardware. Events are immutable values; handlers receive copies.
type PointerEvent struct {
	// Timestamp of the hardware event, in milliseconds with an arbitrary
	// platform-defined origin.
	Timestamp uint64
	// Pos is the pointer position in surface-local coordinates.
	Pos Point
	// Buttons is the full set of buttons held as of this event.
	Buttons PointerButtons
	// Modifiers is the set of keyboard modifiers held during the event.
	Modifiers Modifiers
	// Button is the button that changed state for press/release events.
	// It is always ButtonNone for move and touch events.
	Button PointerButton
	// Focus is true when the press (or its companion release) caused the
	// window to gain focus.
	Focus bool
	// Count is the click count for press events: 2 for double click, and
	// so on.
	Count uint8
	// PointerID identifies the hardware pointer within the input stream.
	// The Info variant is fixed for the lifetime of a given id.
	PointerID uint32
	// IsPrimary marks the primary pointer of a multi-pointer interaction.
	IsPrimary bool
	// Info holds the device-specific payload. Exactly one of MouseInfo,
	// PenInfo or TouchInfo.
	Info PointerInfo
}

// DefaultPointerEvent returns a zero mouse event with a primary pointer.
func DefaultPointerEvent() PointerEvent {
	return PointerEvent{
		Button:    ButtonNone,
		IsPrimary: true,
		Info:      MouseInfo{},
	}
}

// IsMouse reports whether the event came from a mouse.
func (e PointerEvent) IsMouse() bool {
	_, ok := e.Info.(MouseInfo)
	return ok
}

// IsPen reports whether the event came from a pen or stylus.
func (e PointerEvent) IsPen() bool {
	_, ok := e.Info.(PenInfo)
	return ok
}

// IsTouch reports whether the event came from a touch contact.
func (e PointerEvent) IsTouch() bool {
	_, ok := e.Info.(TouchInfo)
	return ok
}
