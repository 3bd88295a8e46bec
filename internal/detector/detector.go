package detector

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrDetectorUnavailable is returned when no landmark model can be started.
var ErrDetectorUnavailable = errors.New("hand detector unavailable")

// Detector defines the interface for hand landmark models.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// ScriptPath overrides the location of mediapipe_service.py.
	ScriptPath string

	// PythonPath overrides the interpreter used to run the script.
	PythonPath string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
	}
}

// Disabled returns a Detector that never reports a hand. It backs runs where
// recognition is switched off on purpose.
func Disabled() Detector { return disabled{} }

type disabled struct{}

func (disabled) Detect(*gocv.Mat) ([]HandLandmarks, error) { return nil, nil }
func (disabled) Close() error                               { return nil }
