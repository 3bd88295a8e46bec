// Package display shows frames on screen and reports key presses.
package display

import (
	"sync"

	"gocv.io/x/gocv"
)

// KeyNone is returned by WaitKey when no key was pressed.
const KeyNone = -1

// Display presents frames and polls the keyboard.
type Display interface {
	Show(frame *gocv.Mat)
	// WaitKey waits up to delayMs milliseconds for a key press and returns
	// its code, or KeyNone.
	WaitKey(delayMs int) int
	Close() error
}

// Window is a Display backed by an OpenCV HighGUI window.
type Window struct {
	mu     sync.Mutex
	window *gocv.Window
}

// NewWindow opens a window with the given title.
func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

func (w *Window) Show(frame *gocv.Mat) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window == nil || frame == nil || frame.Empty() {
		return
	}
	w.window.IMShow(*frame)
}

func (w *Window) WaitKey(delayMs int) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window == nil {
		return KeyNone
	}
	return w.window.WaitKey(delayMs)
}

// Close destroys the window. Further calls are no-ops.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window == nil {
		return nil
	}
	err := w.window.Close()
	w.window = nil
	return err
}

type headless struct{}

// Headless returns a Display that shows nothing and never reports a key.
func Headless() Display { return headless{} }

func (headless) Show(*gocv.Mat)  {}
func (headless) WaitKey(int) int { return KeyNone }
func (headless) Close() error    { return nil }
