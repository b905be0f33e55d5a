package wlkit

import "fmt"

// ConnectionError means the display server could not be reached. It is
// fatal and only surfaced from New; there is no retry at this level.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("wlkit: cannot connect to display: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// BindError means a required protocol global is absent or its version is
// incompatible. It is fatal and only surfaced from New.
type BindError struct {
	// Interface is the name of the missing protocol interface, for
	// example "wl_compositor".
	Interface string
	Err       error
}

func (e *BindError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wlkit: cannot bind %s: %v", e.Interface, e.Err)
	}
	return fmt.Sprintf("wlkit: compositor does not advertise %s", e.Interface)
}

func (e *BindError) Unwrap() error { return e.Err }
