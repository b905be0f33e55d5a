package wlkit

// Conn is the narrow interface the driver needs from the platform
// connection. The real implementation speaks the Wayland wire protocol;
// tests substitute a fake.
type Conn interface {
	// Fd returns the connection's pollable file descriptor.
	Fd() int

	// Dispatch processes every protocol event that is ready, invoking the
	// per-capability handlers registered on the connection. An error means
	// the connection is lost; the loop treats it as fatal.
	Dispatch() error

	// Flush writes buffered requests out to the compositor.
	Flush() error

	// Close tears down the connection.
	Close() error
}

// cursorSetter is implemented by connections that can attach a cursor image
// to the pointer. Optional: the driver probes for it on SetCursor.
type cursorSetter interface {
	SetCursor(name string, size int)
}
