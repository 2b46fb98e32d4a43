package render

import (
	"sync"
	"time"

	"github.com/milk9111/bouncer/ecs"
)

// Recorder is a headless Surface that remembers every property written to
// its handles. It paints nothing.
type Recorder struct {
	mu        sync.Mutex
	handles   map[ecs.Entity]*RecordedHandle
	created   int
	destroyed int
}

func NewRecorder() *Recorder {
	return &Recorder{handles: make(map[ecs.Entity]*RecordedHandle)}
}

// RecordedHandle is a Handle owned by a Recorder.
type RecordedHandle struct {
	Props
	ID             ecs.Entity
	RotationWrites int
	FlipWrites     int
	PositionWrites int

	parent    *Recorder
	destroyed bool
}

func (r *Recorder) Create(id ecs.Entity) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := &RecordedHandle{ID: id, parent: r}
	r.handles[id] = h
	r.created++
	return h
}

// Props returns the properties of the live handle for id.
func (r *Recorder) Props(id ecs.Entity) (Props, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[id]
	if !ok {
		return Props{}, false
	}
	return h.Props, true
}

// Writes reports how many rotation, flip and position writes the live handle for id received.
func (r *Recorder) Writes(id ecs.Entity) (rotation, flip, position int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[id]
	if !ok {
		return 0, 0, 0, false
	}
	return h.RotationWrites, h.FlipWrites, h.PositionWrites, true
}

// Len is the number of live handles.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Counts reports how many handles were ever created and destroyed.
func (r *Recorder) Counts() (created, destroyed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created, r.destroyed
}

func (h *RecordedHandle) SetSize(width, height float64) {
	h.parent.mu.Lock()
	defer h.parent.mu.Unlock()
	h.Props.SetSize(width, height)
}

func (h *RecordedHandle) SetPosition(left, top float64) {
	h.parent.mu.Lock()
	defer h.parent.mu.Unlock()
	h.Props.SetPosition(left, top)
	h.PositionWrites++
}

func (h *RecordedHandle) SetZIndex(z int) {
	h.parent.mu.Lock()
	defer h.parent.mu.Unlock()
	h.Props.SetZIndex(z)
}

func (h *RecordedHandle) SetRotation(degrees int, transition time.Duration) {
	h.parent.mu.Lock()
	defer h.parent.mu.Unlock()
	h.Rotation = degrees
	h.Transition = transition
	h.RotationWrites++
}

func (h *RecordedHandle) SetVerticalFlip(flip bool) {
	h.parent.mu.Lock()
	defer h.parent.mu.Unlock()
	h.Props.SetVerticalFlip(flip)
	h.FlipWrites++
}

// Destroy removes the handle from its Recorder. Repeated calls are no-ops.
func (h *RecordedHandle) Destroy() {
	p := h.parent
	p.mu.Lock()
	defer p.mu.Unlock()
	if h.destroyed {
		return
	}
	h.destroyed = true
	if cur, ok := p.handles[h.ID]; ok && cur == h {
		delete(p.handles, h.ID)
	}
	p.destroyed++
}
