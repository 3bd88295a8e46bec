// Package detector provides the hand landmark model and the Landmark Model interface.
package detector

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLandmarks is returned when a landmark set breaks the fixed 21-point contract.
var ErrInvalidLandmarks = errors.New("invalid hand landmarks")

// Joint indexes a landmark following the MediaPipe hand convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
type Joint int

// Hand landmark indices. Each finger runs base to tip.
const (
	Wrist Joint = iota
	ThumbCMC
	ThumbMCP
	ThumbIP
	ThumbTip
	IndexMCP
	IndexPIP
	IndexDIP
	IndexTip
	MiddleMCP
	MiddlePIP
	MiddleDIP
	MiddleTip
	RingMCP
	RingPIP
	RingDIP
	RingTip
	PinkyMCP
	PinkyPIP
	PinkyDIP
	PinkyTip
)

// NumLandmarks is the number of points in every hand.
const NumLandmarks = 21

var jointNames = [NumLandmarks]string{
	"wrist",
	"thumb_cmc", "thumb_mcp", "thumb_ip", "thumb_tip",
	"index_mcp", "index_pip", "index_dip", "index_tip",
	"middle_mcp", "middle_pip", "middle_dip", "middle_tip",
	"ring_mcp", "ring_pip", "ring_dip", "ring_tip",
	"pinky_mcp", "pinky_pip", "pinky_dip", "pinky_tip",
}

func (j Joint) String() string {
	if j < 0 || int(j) >= NumLandmarks {
		return fmt.Sprintf("joint(%d)", int(j))
	}
	return jointNames[j]
}

// Connection is a skeleton edge between two anatomically adjacent joints.
type Connection struct {
	From, To Joint
}

// Connections is the hand skeleton used for overlays.
var Connections = []Connection{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}

// Point3D is a landmark in normalized frame coordinates.
// X and Y are relative to frame width and height, Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 landmarks of one detected hand in one frame.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// FromPoints builds a HandLandmarks from an ordered point sequence.
// The sequence must hold exactly NumLandmarks points.
func FromPoints(points []Point3D) (HandLandmarks, error) {
	var h HandLandmarks
	if len(points) != NumLandmarks {
		return h, fmt.Errorf("%w: got %d points, want %d", ErrInvalidLandmarks, len(points), NumLandmarks)
	}
	copy(h.Points[:], points)
	return h, nil
}

// At returns the landmark for the given joint.
func (h *HandLandmarks) At(j Joint) Point3D {
	return h.Points[j]
}

// Validate reports whether the landmarks can be classified.
// Coordinates must be finite and the reference joints used for the thumb
// direction and pinch measurements must not coincide.
func (h *HandLandmarks) Validate() error {
	if h == nil {
		return fmt.Errorf("%w: nil hand", ErrInvalidLandmarks)
	}

	for i, p := range h.Points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return fmt.Errorf("%w: %s has non-finite coordinates", ErrInvalidLandmarks, Joint(i))
		}
	}

	for _, pair := range [][2]Joint{{Wrist, ThumbTip}, {ThumbMCP, IndexMCP}} {
		if Distance2D(h.Points[pair[0]], h.Points[pair[1]]) == 0 {
			return fmt.Errorf("%w: %s coincides with %s", ErrInvalidLandmarks, pair[0], pair[1])
		}
	}

	return nil
}

// Distance2D returns the planar Euclidean distance between two points.
func Distance2D(a, b Point3D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
