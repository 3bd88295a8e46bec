package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Calls returns how many times Detect was invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Close marks the detector closed.
func (m *MockDetector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockDetector) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Finger columns for the preset hands (right hand, palm facing the camera, mirrored view).
var fingerColumns = map[Joint]float64{
	IndexMCP:  0.55,
	MiddleMCP: 0.50,
	RingMCP:   0.45,
	PinkyMCP:  0.40,
}

// curledHand returns an upright hand with every finger retracted.
func curledHand() HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.70, Z: -0.01}
	h.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.66, Z: -0.02}
	h.Points[ThumbTip] = Point3D{X: 0.53, Y: 0.68, Z: -0.02}

	for mcp, x := range fingerColumns {
		h.Points[mcp] = Point3D{X: x, Y: 0.68, Z: -0.02}
		h.Points[mcp+1] = Point3D{X: x, Y: 0.62, Z: -0.05}
		h.Points[mcp+2] = Point3D{X: x - 0.02, Y: 0.66, Z: -0.04}
		h.Points[mcp+3] = Point3D{X: x - 0.03, Y: 0.70, Z: -0.02}
	}

	return h
}

// extendFinger straightens one finger upward. mcp must be a finger base joint.
func extendFinger(h *HandLandmarks, mcp Joint) {
	x := fingerColumns[mcp]
	h.Points[mcp+1] = Point3D{X: x + 0.01, Y: 0.55, Z: 0.0}
	h.Points[mcp+2] = Point3D{X: x + 0.02, Y: 0.45, Z: 0.0}
	h.Points[mcp+3] = Point3D{X: x + 0.02, Y: 0.35, Z: 0.0}
}

// FistLandmarks returns a preset hand with all five fingers curled.
func FistLandmarks() HandLandmarks {
	return curledHand()
}

// PointingLandmarks returns a preset hand with only the index finger extended.
func PointingLandmarks() HandLandmarks {
	h := curledHand()
	extendFinger(&h, IndexMCP)
	return h
}

// VictoryLandmarks returns a preset hand matching the victory rule:
// middle finger extended, index, ring and pinky curled.
func VictoryLandmarks() HandLandmarks {
	h := curledHand()
	extendFinger(&h, MiddleMCP)
	return h
}

// RockLandmarks returns a preset hand with index and pinky extended.
func RockLandmarks() HandLandmarks {
	h := curledHand()
	extendFinger(&h, IndexMCP)
	extendFinger(&h, PinkyMCP)
	return h
}

// ThumbsUpLandmarks returns a preset HandLandmarks representing a thumbs up gesture.
// The thumb is extended upward while other fingers are curled.
func ThumbsUpLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended upward (pointing up, Y decreases going up)
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Index finger curled (knuckles close together, tip near palm)
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	landmarks.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	landmarks.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}

	return landmarks
}

// ThumbsDownLandmarks returns a preset hand with the thumb extended but aimed
// sideways, so its direction from the wrist is shallower than the thumbs up cutoff.
func ThumbsDownLandmarks() HandLandmarks {
	h := curledHand()
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.74, Z: 0.0}
	h.Points[ThumbIP] = Point3D{X: 0.72, Y: 0.72, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.80, Y: 0.70, Z: 0.0}
	return h
}

// PinchLandmarks returns a preset hand with thumb and index extended and their tips touching.
func PinchLandmarks() HandLandmarks {
	h := curledHand()
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.0}
	h.Points[ThumbIP] = Point3D{X: 0.63, Y: 0.60, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.62, Y: 0.53, Z: 0.0}

	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.60, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.60, Y: 0.54, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.61, Y: 0.52, Z: 0.0}
	return h
}

// LShapeLandmarks returns a preset hand with thumb and index extended and spread apart.
// The pointing rule ignores the thumb, so it classifies as Pointing.
func LShapeLandmarks() HandLandmarks {
	h := curledHand()
	extendFinger(&h, IndexMCP)
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.0}
	h.Points[ThumbIP] = Point3D{X: 0.70, Y: 0.66, Z: 0.0}
	h.Points[ThumbTip] = Point3D{X: 0.75, Y: 0.62, Z: 0.0}
	return h
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open palm gesture.
// All fingers are extended outward.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}
