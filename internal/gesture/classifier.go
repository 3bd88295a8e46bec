package gesture

import (
	"encoding/json"
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Fixed refinement thresholds. They assume an upright hand facing the camera.
const (
	// ThumbsUpMaxAngle is the wrist-to-thumb-tip angle, in degrees, below which
	// an extended thumb counts as pointing up. Image Y grows downward.
	ThumbsUpMaxAngle = -45.0

	// PinchRatio is the fraction of the thumb/index base distance that the
	// thumb/index tip distance must stay under to form an OK circle.
	PinchRatio = 0.5
)

// radiansPerDegree is pi/180 rounded once from the float64 value of pi.
const radiansPerDegree = float64(math.Pi) / 180

// Finger identifies one of the five fingers.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
	numFingers
)

var fingerNames = [numFingers]string{"thumb", "index", "middle", "ring", "pinky"}

func (f Finger) String() string {
	if f < 0 || f >= numFingers {
		return "finger"
	}
	return fingerNames[f]
}

// fingerJoints maps each finger to its tip and the joint the tip is compared against.
var fingerJoints = [numFingers]struct{ tip, ref detector.Joint }{
	Thumb:  {detector.ThumbTip, detector.ThumbIP},
	Index:  {detector.IndexTip, detector.IndexPIP},
	Middle: {detector.MiddleTip, detector.MiddlePIP},
	Ring:   {detector.RingTip, detector.RingPIP},
	Pinky:  {detector.PinkyTip, detector.PinkyPIP},
}

// Fingers holds the extension state of each finger, indexed by Finger.
type Fingers [numFingers]bool

// Extended reports whether the finger is extended.
func (f Fingers) Extended(finger Finger) bool {
	return f[finger]
}

// MarshalJSON encodes the state as {"index":true,...}.
func (f Fingers) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, numFingers)
	for i, v := range f {
		m[fingerNames[i]] = v
	}
	return json.Marshal(m)
}

// Extension computes which fingers are extended.
// A finger is extended when its tip is strictly higher on screen (smaller Y)
// than its reference joint; equal Y counts as retracted.
func Extension(hand *detector.HandLandmarks) Fingers {
	var f Fingers
	for i, j := range fingerJoints {
		f[i] = hand.Points[j.tip].Y < hand.Points[j.ref].Y
	}
	return f
}

// ThumbAngle returns the direction from wrist to thumb tip in degrees, in (-180, 180].
func ThumbAngle(hand *detector.HandLandmarks) float64 {
	wrist := hand.Points[detector.Wrist]
	tip := hand.Points[detector.ThumbTip]
	return math.Atan2(tip.Y-wrist.Y, tip.X-wrist.X) / radiansPerDegree
}

// PinchDistances returns the thumb/index tip distance and the thumb/index base distance.
func PinchDistances(hand *detector.HandLandmarks) (tip, base float64) {
	tip = detector.Distance2D(hand.Points[detector.ThumbTip], hand.Points[detector.IndexTip])
	base = detector.Distance2D(hand.Points[detector.ThumbMCP], hand.Points[detector.IndexMCP])
	return tip, base
}

// Classify maps a hand to a gesture label by evaluating Rules in order.
// The first rule whose pattern matches and whose refinement accepts wins;
// when none does the result is Unknown.
//
// Invalid landmarks return Unknown with an error wrapping detector.ErrInvalidLandmarks.
func Classify(hand *detector.HandLandmarks) (Label, error) {
	if err := hand.Validate(); err != nil {
		return Unknown, err
	}

	fingers := Extension(hand)
	for _, r := range rules {
		if label, ok := r.apply(hand, fingers); ok {
			return label, nil
		}
	}
	return Unknown, nil
}
