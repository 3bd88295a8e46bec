package display

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDisplay records shown frames and replays scripted key presses for testing.
type MockDisplay struct {
	mu     sync.Mutex
	shown  int
	sizes  [][2]int
	keys   []int
	closed bool
	onShow func(frame *gocv.Mat)
}

// NewMockDisplay returns a MockDisplay that answers WaitKey with keys in order,
// then KeyNone.
func NewMockDisplay(keys ...int) *MockDisplay {
	return &MockDisplay{keys: keys}
}

// OnShow registers a callback invoked with every shown frame.
func (d *MockDisplay) OnShow(fn func(frame *gocv.Mat)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onShow = fn
}

func (d *MockDisplay) Show(frame *gocv.Mat) {
	d.mu.Lock()
	d.shown++
	d.sizes = append(d.sizes, [2]int{frame.Cols(), frame.Rows()})
	fn := d.onShow
	d.mu.Unlock()

	if fn != nil {
		fn(frame)
	}
}

func (d *MockDisplay) WaitKey(int) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.keys) == 0 {
		return KeyNone
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k
}

func (d *MockDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Shown returns how many frames were shown.
func (d *MockDisplay) Shown() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

// Closed reports whether Close was called.
func (d *MockDisplay) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
