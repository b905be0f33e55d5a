package wlkit

import "strings"

// Modifiers is a bitset of keyboard modifiers held during an input event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
	ModCapsLock
	ModNumLock
)

// Shift reports whether the shift key is held.
func (m Modifiers) Shift() bool { return m&ModShift != 0 }

// Ctrl reports whether the control key is held.
func (m Modifiers) Ctrl() bool { return m&ModCtrl != 0 }

// Alt reports whether the alt key is held.
func (m Modifiers) Alt() bool { return m&ModAlt != 0 }

// Meta reports whether the meta (logo/super) key is held.
func (m Modifiers) Meta() bool { return m&ModMeta != 0 }

// CapsLock reports whether caps lock is latched.
func (m Modifiers) CapsLock() bool { return m&ModCapsLock != 0 }

// NumLock reports whether num lock is latched.
func (m Modifiers) NumLock() bool { return m&ModNumLock != 0 }

func (m Modifiers) String() string {
	if m == 0 {
		return "None"
	}
	var parts []string
	for _, p := range []struct {
		bit  Modifiers
		name string
	}{
		{ModShift, "Shift"},
		{ModCtrl, "Ctrl"},
		{ModAlt, "Alt"},
		{ModMeta, "Meta"},
		{ModCapsLock, "CapsLock"},
		{ModNumLock, "NumLock"},
	} {
		if m&p.bit != 0 {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, "+")
}
