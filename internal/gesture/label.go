// Package gesture classifies a single hand pose into a named gesture.
//
// Classification is frame-local: it reads only the 21 landmarks of one hand,
// keeps no state between calls and has no side effects.
package gesture

import (
	"encoding/json"
	"fmt"
)

// Label is the result of classifying one hand.
type Label int

const (
	Unknown Label = iota
	Fist
	OpenHand
	Pointing
	Victory
	Rock
	ThumbsUp
	ThumbsDown
	OK
)

var labelNames = map[Label]string{
	Unknown:    "Unknown",
	Fist:       "Fist",
	OpenHand:   "Open Hand",
	Pointing:   "Pointing",
	Victory:    "Victory",
	Rock:       "Rock",
	ThumbsUp:   "Thumbs Up",
	ThumbsDown: "Thumbs Down",
	OK:         "OK",
}

// Labels returns every known label except Unknown, in declaration order.
func Labels() []Label {
	return []Label{Fist, OpenHand, Pointing, Victory, Rock, ThumbsUp, ThumbsDown, OK}
}

// String returns the display text drawn next to the hand.
func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// ParseLabel converts display text back to a Label.
func ParseLabel(s string) (Label, error) {
	for l, name := range labelNames {
		if name == s {
			return l, nil
		}
	}
	return Unknown, fmt.Errorf("unknown gesture label %q", s)
}

// MarshalJSON encodes the label as its display text.
func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a label from its display text.
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLabel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
