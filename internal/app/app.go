// Package app runs the capture, recognize and display loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/annotate"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/display"
)

var (
	// ErrStartup is returned by Run when the frame source cannot be opened.
	ErrStartup = errors.New("startup failed")

	// ErrSourceExhausted is returned by Run when the frame source stops yielding frames.
	ErrSourceExhausted = errors.New("frame source exhausted")

	// ErrNoDetector is returned by Run when no landmark detector is configured.
	ErrNoDetector = errors.New("no hand detector configured")
)

// DefaultKeyDelay is how long each iteration waits for a key press, in milliseconds.
const DefaultKeyDelay = 1

// FrameResult is what listeners receive after a frame has been rendered.
// Frame is only valid for the duration of the HandleFrame call.
type FrameResult struct {
	Seq         uint64
	Time        time.Time
	Frame       *gocv.Mat
	Hands       []detector.HandLandmarks
	Annotations []annotate.Annotation
}

// Listener is notified synchronously for every processed frame.
type Listener interface {
	HandleFrame(FrameResult)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(FrameResult)

func (f ListenerFunc) HandleFrame(r FrameResult) { f(r) }

// Config holds the collaborators of the loop.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	// Renderer draws annotations. Nil uses the gocv renderer with the default style.
	Renderer annotate.Renderer
	// Display shows frames. Nil runs headless.
	Display   display.Display
	Listeners []Listener
	// KeyDelay is the WaitKey delay in milliseconds. Zero uses DefaultKeyDelay.
	KeyDelay int
}

// App is the main application that orchestrates capture, recognition and display.
type App struct {
	camera    capture.Camera
	detector  detector.Detector
	annotator *annotate.Annotator
	display   display.Display
	keyDelay  int
	stats     *Stats

	mu        sync.RWMutex
	enabled   bool
	listeners []Listener
	cancel    context.CancelFunc
}

// New creates a new App with recognition enabled.
func New(config Config) *App {
	renderer := config.Renderer
	if renderer == nil {
		renderer = annotate.NewRenderer(annotate.DefaultStyle())
	}
	disp := config.Display
	if disp == nil {
		disp = display.Headless()
	}
	keyDelay := config.KeyDelay
	if keyDelay <= 0 {
		keyDelay = DefaultKeyDelay
	}

	return &App{
		camera:    config.Camera,
		detector:  config.Detector,
		annotator: annotate.New(renderer),
		display:   disp,
		keyDelay:  keyDelay,
		stats:     NewStats(),
		enabled:   true,
		listeners: append([]Listener(nil), config.Listeners...),
	}
}

// SetEnabled enables or disables gesture recognition.
// While disabled frames are still mirrored and shown.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// AddListener registers l for every subsequent frame.
func (a *App) AddListener(l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, l)
}

// Stats returns the runtime counters of the loop.
func (a *App) Stats() *Stats {
	return a.stats
}

// Stop asks a running loop to return after the current frame.
func (a *App) Stop() {
	a.mu.RLock()
	cancel := a.cancel
	a.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
}

// Run opens the camera and processes frames until ctx is cancelled, Stop is
// called, the quit key is pressed, or the source runs out of frames.
//
// A camera that fails to open yields an error wrapping ErrStartup; a failed
// read yields an error wrapping ErrSourceExhausted. A detector that gives up
// yields an error wrapping detector.ErrDetectorUnavailable. The camera, display and
// detector are released on every return path.
func (a *App) Run(ctx context.Context) error {
	if a.camera == nil {
		return fmt.Errorf("%w: no camera configured", ErrStartup)
	}
	if a.detector == nil {
		return fmt.Errorf("%w: %w", ErrStartup, ErrNoDetector)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.mu.Lock()
	a.cancel = cancel
	a.mu.Unlock()

	defer a.release()

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("%w: %w", ErrStartup, err)
	}
	a.stats.markStarted()
	log.Println("Capture loop started")

	for seq := uint64(1); ; seq++ {
		select {
		case <-ctx.Done():
			log.Println("Capture loop stopped")
			return nil
		default:
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSourceExhausted, err)
		}

		quit, err := a.processFrame(seq, frame)
		frame.Close()
		if err != nil {
			return err
		}

		if quit {
			log.Println("Quit key pressed")
			return nil
		}
	}
}

func (a *App) release() {
	a.mu.Lock()
	a.cancel = nil
	a.mu.Unlock()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	if err := a.display.Close(); err != nil {
		log.Printf("Error closing display: %v", err)
	}
	if err := a.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}
}
