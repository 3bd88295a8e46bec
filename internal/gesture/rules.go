package gesture

import (
	"github.com/ayusman/mudra/internal/detector"
)

// State is the finger condition a rule requires.
type State int8

const (
	Any State = iota
	Extended
	Retracted
)

// Pattern lists the required State of each finger, indexed by Finger.
type Pattern [numFingers]State

// Matches reports whether the extension state satisfies the pattern.
func (p Pattern) Matches(f Fingers) bool {
	for i, want := range p {
		switch want {
		case Extended:
			if !f[i] {
				return false
			}
		case Retracted:
			if f[i] {
				return false
			}
		}
	}
	return true
}

// Rule is one entry of the ordered decision table.
type Rule struct {
	Name    string
	Pattern Pattern

	// Label is returned on a pattern match when Resolve is nil.
	Label Label

	// Resolve refines a pattern match. Returning false declines the match and
	// evaluation continues with the next rule.
	Resolve func(hand *detector.HandLandmarks) (Label, bool)
}

func (r Rule) apply(hand *detector.HandLandmarks, f Fingers) (Label, bool) {
	if !r.Pattern.Matches(f) {
		return Unknown, false
	}
	if r.Resolve == nil {
		return r.Label, true
	}
	return r.Resolve(hand)
}

const (
	ext = Extended
	ret = Retracted
)

// rules is evaluated top to bottom. Order is significant: Pointing ignores
// the thumb, so it claims every thumb-and-index pose before the OK rule.
var rules = []Rule{
	// Pattern order: thumb, index, middle, ring, pinky.
	{Name: "fist", Pattern: Pattern{ret, ret, ret, ret, ret}, Label: Fist},
	{Name: "open hand", Pattern: Pattern{ext, ext, ext, ext, ext}, Label: OpenHand},
	{Name: "pointing", Pattern: Pattern{Any, ext, ret, ret, ret}, Label: Pointing},
	{Name: "victory", Pattern: Pattern{Any, ret, ext, ret, ret}, Label: Victory},
	{Name: "rock", Pattern: Pattern{Any, ext, ret, ret, ext}, Label: Rock},
	{Name: "thumb direction", Pattern: Pattern{ext, ret, ret, ret, ret}, Resolve: thumbDirection},
	{Name: "ok", Pattern: Pattern{ext, ext, ret, ret, ret}, Resolve: pinch},
}

// Rules returns a copy of the decision table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// thumbDirection splits a lone extended thumb into up or down by its angle from the wrist.
func thumbDirection(hand *detector.HandLandmarks) (Label, bool) {
	if ThumbAngle(hand) < ThumbsUpMaxAngle {
		return ThumbsUp, true
	}
	return ThumbsDown, true
}

// pinch accepts only when thumb and index tips nearly touch; otherwise it declines.
func pinch(hand *detector.HandLandmarks) (Label, bool) {
	tip, base := PinchDistances(hand)
	if tip < base*PinchRatio {
		return OK, true
	}
	return Unknown, false
}
