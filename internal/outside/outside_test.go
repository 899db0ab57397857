package outside

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int }

func (c *counter) inc() { c.n++ }

func panelRegion() Rect { return Rect{X: 0, Y: 0, W: 10, H: 5} }

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 3, H: 2}
	assert.True(t, r.Contains(2, 1))
	assert.True(t, r.Contains(4, 2))
	assert.False(t, r.Contains(5, 1))
	assert.False(t, r.Contains(2, 3))
	assert.False(t, Rect{}.Contains(0, 0))

	x, y := r.Translate(4, 2)
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
}

func TestInactiveDetectorNeverFires(t *testing.T) {
	hub := NewHub()
	c := &counter{}
	NewDetector(hub, panelRegion, c.inc)

	hub.Dispatch(PointerEvent{X: 50, Y: 50})
	assert.Equal(t, 0, c.n)
	assert.Equal(t, 0, hub.Len())
}

func TestActiveDetector(t *testing.T) {
	hub := NewHub()
	c := &counter{}
	d := NewDetector(hub, panelRegion, c.inc)
	d.SetActive(true)

	hub.Dispatch(PointerEvent{X: 3, Y: 3})
	assert.Equal(t, 0, c.n, "press inside the region")

	hub.Dispatch(PointerEvent{X: 30, Y: 3})
	assert.Equal(t, 1, c.n, "press outside the region")
}

func TestTransitionsAttachAndDetachOnce(t *testing.T) {
	hub := NewHub()
	c := &counter{}
	d := NewDetector(hub, panelRegion, c.inc)

	d.SetActive(true)
	d.SetActive(true)
	require.Equal(t, 1, hub.Len())

	d.SetActive(false)
	d.SetActive(false)
	require.Equal(t, 0, hub.Len())

	d.SetActive(true)
	d.SetActive(false)
	d.SetActive(true)
	require.Equal(t, 1, hub.Len())

	hub.Dispatch(PointerEvent{X: 99, Y: 99})
	assert.Equal(t, 1, c.n)
}

func TestCloseStopsEverything(t *testing.T) {
	hub := NewHub()
	c := &counter{}
	d := NewDetector(hub, panelRegion, c.inc)
	d.SetActive(true)
	d.Close()

	assert.Equal(t, 0, hub.Len())
	assert.False(t, d.Active())
	d.SetActive(true)
	assert.Equal(t, 0, hub.Len(), "closed detector must not resubscribe")

	hub.Dispatch(PointerEvent{X: 99, Y: 99})
	assert.Equal(t, 0, c.n)
}

func TestDetachDuringDispatch(t *testing.T) {
	hub := NewHub()
	calls := 0
	var second *Detector
	first := NewDetector(hub, panelRegion, func() {
		calls++
		second.SetActive(false)
	})
	second = NewDetector(hub, panelRegion, func() { calls++ })
	first.SetActive(true)
	second.SetActive(true)

	hub.Dispatch(PointerEvent{X: 40, Y: 0})
	assert.Equal(t, 1, calls, "second was detached before its snapshotted handler ran")
	assert.Equal(t, 1, hub.Len())
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()
	other := hub.Subscribe(func(PointerEvent) {})
	unsub := hub.Subscribe(func(PointerEvent) {})
	unsub()
	unsub()
	assert.Equal(t, 1, hub.Len())
	other()
	assert.Equal(t, 0, hub.Len())
}
