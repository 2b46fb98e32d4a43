package ecs

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns the sprite store, system order and event queue.
type World struct {
	store   *Store
	systems []System
	events  EventQueue
	ticks   uint64
}

// NewWorld creates a world around store. A nil store is replaced by an empty one.
func NewWorld(store *Store) *World {
	if store == nil {
		store = NewStore(nil)
	}
	return &World{store: store}
}

// Store returns the sprite store.
func (w *World) Store() *Store {
	if w == nil {
		return nil
	}
	return w.store
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once, in order, then clears the event queue.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.ticks++
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.events.flush()
}

// Ticks reports how many times Update has run.
func (w *World) Ticks() uint64 {
	if w == nil {
		return 0
	}
	return w.ticks
}

// Resize changes the sprite count. Survivors keep their state.
func (w *World) Resize(count int) (added, removed []Entity) {
	if w == nil {
		return nil, nil
	}
	return w.store.Resize(count)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
