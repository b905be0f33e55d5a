//go:build unix && !linux

package wlkit

import "errors"

func dialWayland(app *Application) (Conn, error) {
	return nil, &ConnectionError{Err: errors.New("no wayland display on this platform; supply a connection with WithConn")}
}
