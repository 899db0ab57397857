// Package outside detects pointer presses that land outside a screen region.
package outside

import (
	"sort"
	"sync"
)

// Rect is a screen region in terminal cells. The zero Rect contains nothing.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Translate returns (x, y) relative to the region's origin.
func (r Rect) Translate(x, y int) (int, int) {
	return x - r.X, y - r.Y
}

// PointerEvent is a pointer press at a terminal cell.
type PointerEvent struct {
	X, Y int
}

// Hub fans pointer presses out to subscribers, the way a document-level
// listener list would.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(PointerEvent)
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]func(PointerEvent))}
}

// Subscribe registers fn and returns the func that removes it. Calling the
// returned func more than once is harmless.
func (h *Hub) Subscribe(fn func(PointerEvent)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Dispatch delivers ev to every subscriber registered when the call starts,
// in subscription order. Handlers may subscribe or unsubscribe while it runs.
func (h *Hub) Dispatch(ev PointerEvent) {
	h.mu.Lock()
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(PointerEvent), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, h.subs[id])
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Detector calls onOutside for every press outside region while active.
// Its hub subscription exists exactly while it is active.
type Detector struct {
	hub       *Hub
	region    func() Rect
	onOutside func()

	active      bool
	closed      bool
	unsubscribe func()
}

// NewDetector builds an inactive detector. region is evaluated per event so
// it always sees the current layout.
func NewDetector(hub *Hub, region func() Rect, onOutside func()) *Detector {
	return &Detector{hub: hub, region: region, onOutside: onOutside}
}

// Active reports whether the detector is subscribed.
func (d *Detector) Active() bool {
	return d.active
}

// SetActive attaches on an inactive→active transition and detaches on
// active→inactive. Repeating the current state does nothing, as does
// activating a closed detector.
func (d *Detector) SetActive(active bool) {
	if active == d.active {
		return
	}
	if active {
		if d.closed {
			return
		}
		d.unsubscribe = d.hub.Subscribe(d.handle)
		d.active = true
		return
	}
	d.detach()
}

// Close detaches for good.
func (d *Detector) Close() {
	d.closed = true
	d.detach()
}

func (d *Detector) detach() {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	d.active = false
}

func (d *Detector) handle(ev PointerEvent) {
	// A handler snapshotted by an in-flight Dispatch can still run after
	// detach; drop it.
	if !d.active || d.closed {
		return
	}
	if d.region().Contains(ev.X, ev.Y) {
		return
	}
	if d.onOutside != nil {
		d.onOutside()
	}
}
