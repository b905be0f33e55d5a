// Package wlkit is the event-loop core of a Wayland windowing backend.
//
// It multiplexes the display-server event queue with a software timer
// queue and a registry of live window surfaces, and it normalizes mouse,
// pen and touch hardware into one pointer event model. The whole loop is
// single-threaded and cooperative: handlers run on the loop's thread and
// may reentrantly schedule timers or mutate the registry, which the driver
// absorbs by iterating over snapshots.
//
// Protocol bring-up, rendering and the widget layer that consumes events
// are out of scope; they talk to this package through Conn, WindowHandler
// and AppHandler.
package wlkit
