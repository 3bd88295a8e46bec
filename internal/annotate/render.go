package annotate

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// Style controls how the gocv renderer draws.
type Style struct {
	BoneColor  color.RGBA
	JointColor color.RGBA
	BoxColor   color.RGBA
	TextColor  color.RGBA
	Thickness  int
	JointSize  int
	FontScale  float64
}

// DefaultStyle returns green boxes and text over a white skeleton with red joints.
func DefaultStyle() Style {
	return Style{
		BoneColor:  color.RGBA{R: 255, G: 255, B: 255, A: 0},
		JointColor: color.RGBA{R: 255, G: 0, B: 0, A: 0},
		BoxColor:   color.RGBA{R: 0, G: 255, B: 0, A: 0},
		TextColor:  color.RGBA{R: 0, G: 255, B: 0, A: 0},
		Thickness:  2,
		JointSize:  4,
		FontScale:  1,
	}
}

// gocvRenderer draws with OpenCV primitives.
type gocvRenderer struct {
	style Style
}

// NewRenderer returns a Renderer backed by gocv drawing functions.
func NewRenderer(style Style) Renderer {
	return &gocvRenderer{style: style}
}

func (r *gocvRenderer) DrawSkeleton(frame *gocv.Mat, hand *detector.HandLandmarks) {
	w, h := frame.Cols(), frame.Rows()

	var pts [detector.NumLandmarks]image.Point
	for i, p := range hand.Points {
		pts[i] = image.Point{X: int(p.X * float64(w)), Y: int(p.Y * float64(h))}
	}

	for _, c := range detector.Connections {
		gocv.Line(frame, pts[c.From], pts[c.To], r.style.BoneColor, r.style.Thickness)
	}
	for _, pt := range pts {
		gocv.Circle(frame, pt, r.style.JointSize, r.style.JointColor, -1)
	}
}

func (r *gocvRenderer) DrawAnnotation(frame *gocv.Mat, a Annotation) {
	gocv.Rectangle(frame, a.Box, r.style.BoxColor, r.style.Thickness)
	gocv.PutText(frame, a.Label.String(), a.Anchor, gocv.FontHersheySimplex,
		r.style.FontScale, r.style.TextColor, r.style.Thickness)
}
