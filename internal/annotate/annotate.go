// Package annotate turns classified hands into on-frame annotations.
package annotate

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// LabelMargin is how far above the bounding box the label text is anchored, in pixels.
const LabelMargin = 10

// Annotation is the box and label drawn for one recognized hand.
type Annotation struct {
	Hand   int             `json:"hand"` // index into the frame's hand list
	Label  gesture.Label   `json:"label"`
	Box    image.Rectangle `json:"box"`
	Anchor image.Point     `json:"anchor"`
}

// BoundingBox returns the pixel rectangle spanning every landmark of the hand.
// Coordinates are scaled by the frame size and truncated toward zero.
func BoundingBox(hand *detector.HandLandmarks, width, height int) image.Rectangle {
	first := hand.Points[0]
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y

	for _, p := range hand.Points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	w, h := float64(width), float64(height)
	return image.Rectangle{
		Min: image.Point{X: int(minX * w), Y: int(minY * h)},
		Max: image.Point{X: int(maxX * w), Y: int(maxY * h)},
	}
}

// Annotations classifies each hand and returns one Annotation per recognized hand.
// Hands classified as Unknown produce nothing.
func Annotations(width, height int, hands []detector.HandLandmarks) ([]Annotation, error) {
	var out []Annotation
	for i := range hands {
		hand := &hands[i]

		label, err := gesture.Classify(hand)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i, err)
		}
		if label == gesture.Unknown {
			continue
		}

		box := BoundingBox(hand, width, height)
		out = append(out, Annotation{
			Hand:   i,
			Label:  label,
			Box:    box,
			Anchor: image.Point{X: box.Min.X, Y: box.Min.Y - LabelMargin},
		})
	}
	return out, nil
}

// Renderer draws annotations onto a frame.
type Renderer interface {
	// DrawSkeleton draws the landmark points and the lines between adjacent joints.
	DrawSkeleton(frame *gocv.Mat, hand *detector.HandLandmarks)

	// DrawAnnotation draws the bounding box outline and the label text.
	DrawAnnotation(frame *gocv.Mat, a Annotation)
}

// Annotator computes annotations for a frame and renders them.
type Annotator struct {
	renderer Renderer
}

// New creates an Annotator. A nil renderer computes annotations without drawing.
func New(r Renderer) *Annotator {
	return &Annotator{renderer: r}
}

// Annotate draws the skeleton of every hand and the box and label of every
// recognized hand onto frame, and returns the annotations it drew.
// With no hands the frame is left untouched.
func (a *Annotator) Annotate(frame *gocv.Mat, hands []detector.HandLandmarks) ([]Annotation, error) {
	if len(hands) == 0 {
		return nil, nil
	}
	if frame == nil || frame.Empty() {
		return nil, fmt.Errorf("annotate: empty frame")
	}

	annotations, err := Annotations(frame.Cols(), frame.Rows(), hands)
	if err != nil {
		return nil, err
	}

	if a.renderer != nil {
		for i := range hands {
			a.renderer.DrawSkeleton(frame, &hands[i])
		}
		for _, ann := range annotations {
			a.renderer.DrawAnnotation(frame, ann)
		}
	}

	return annotations, nil
}
