package display

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestHeadless(t *testing.T) {
	d := Headless()

	frame := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer frame.Close()

	d.Show(&frame)
	if k := d.WaitKey(1); k != KeyNone {
		t.Errorf("WaitKey() = %d, want KeyNone", k)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestMockDisplay(t *testing.T) {
	d := NewMockDisplay('a', 'q')

	frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()

	var seen int
	d.OnShow(func(f *gocv.Mat) {
		if f.Cols() == 64 && f.Rows() == 48 {
			seen++
		}
	})

	d.Show(&frame)
	d.Show(&frame)

	if d.Shown() != 2 || seen != 2 {
		t.Errorf("Shown() = %d, callback saw %d, want 2", d.Shown(), seen)
	}

	for _, want := range []int{'a', 'q', KeyNone, KeyNone} {
		if got := d.WaitKey(1); got != want {
			t.Errorf("WaitKey() = %d, want %d", got, want)
		}
	}

	d.Close()
	if !d.Closed() {
		t.Error("Closed() = false after Close")
	}
}

func TestWindow_CloseTwice(t *testing.T) {
	w := &Window{}

	if err := w.Close(); err != nil {
		t.Errorf("Close() on unopened window error = %v", err)
	}
	if k := w.WaitKey(1); k != KeyNone {
		t.Errorf("WaitKey() on closed window = %d, want KeyNone", k)
	}
}
