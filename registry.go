package wlkit

import "sort"

// RegistryEntry is one surface in a registry snapshot.
type RegistryEntry struct {
	ID     uint64
	Handle *WindowHandle
}

// SurfaceRegistry maps platform surface ids to live window handles and
// tracks the active-surface stack used to route untargeted input.
//
// The registry is owned by the driver's single thread. Handlers invoked
// during a Snapshot iteration may mutate the registry; the snapshot is a
// point-in-time shallow copy and stays valid.
type SurfaceRegistry struct {
	handles map[uint64]*WindowHandle
	// active is the focus stack, front (index 0) = current. Every entry
	// must refer to a live handle; Unregister prunes stale ids.
	active []uint64
}

// NewSurfaceRegistry returns an empty registry.
func NewSurfaceRegistry() *SurfaceRegistry {
	return &SurfaceRegistry{handles: make(map[uint64]*WindowHandle)}
}

// Register inserts or replaces the handle for a surface id. Called on
// surface creation.
func (r *SurfaceRegistry) Register(id uint64, handle *WindowHandle) {
	r.handles[id] = handle
}

// Unregister removes the surface and prunes its id from the active stack
// wherever it appears. Removing an absent id is a no-op.
func (r *SurfaceRegistry) Unregister(id uint64) {
	delete(r.handles, id)
	r.pruneActive(id)
}

// Lookup returns the handle registered for id. A surface that has been
// unregistered never resolves, even if events for it are still in flight.
func (r *SurfaceRegistry) Lookup(id uint64) (*WindowHandle, bool) {
	h, ok := r.handles[id]
	return h, ok
}

// Snapshot returns a shallow copy of the registry ordered by surface id.
// Iterate the snapshot when handlers may mutate the registry mid-flight.
func (r *SurfaceRegistry) Snapshot() []RegistryEntry {
	entries := make([]RegistryEntry, 0, len(r.handles))
	for id, h := range r.handles {
		entries = append(entries, RegistryEntry{ID: id, Handle: h})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// PushActive moves id to the front of the active stack, making it the
// delivery target for untargeted input.
func (r *SurfaceRegistry) PushActive(id uint64) {
	r.pruneActive(id)
	r.active = append([]uint64{id}, r.active...)
}

// PopActive removes id from the active stack wherever it appears.
func (r *SurfaceRegistry) PopActive(id uint64) {
	r.pruneActive(id)
}

func (r *SurfaceRegistry) pruneActive(id uint64) {
	kept := r.active[:0]
	for _, a := range r.active {
		if a != id {
			kept = append(kept, a)
		}
	}
	r.active = kept
}

// ActiveID returns the id at the front of the active stack.
func (r *SurfaceRegistry) ActiveID() (uint64, bool) {
	if len(r.active) == 0 {
		return 0, false
	}
	return r.active[0], true
}

// CurrentActive resolves the front of the active stack through Lookup.
// Returns false if the stack is empty or the front id is stale. The stale
// case should not occur while Unregister's pruning holds; the check is
// defensive.
func (r *SurfaceRegistry) CurrentActive() (*WindowHandle, bool) {
	id, ok := r.ActiveID()
	if !ok {
		return nil, false
	}
	return r.Lookup(id)
}

// Len returns the number of registered surfaces.
func (r *SurfaceRegistry) Len() int { return len(r.handles) }
