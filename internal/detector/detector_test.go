package detector

import (
	"errors"
	"math"
	"testing"
)

func TestFromPoints(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{name: "exactly 21 points", count: NumLandmarks},
		{name: "too few points", count: 20, wantErr: true},
		{name: "too many points", count: 22, wantErr: true},
		{name: "empty", count: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]Point3D, tt.count)
			for i := range points {
				points[i] = Point3D{X: float64(i) / 100, Y: float64(i) / 50}
			}

			hand, err := FromPoints(points)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLandmarks) {
					t.Fatalf("FromPoints() error = %v, want ErrInvalidLandmarks", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromPoints() unexpected error: %v", err)
			}
			if hand.Points[IndexTip] != points[8] {
				t.Errorf("IndexTip = %+v, want %+v", hand.Points[IndexTip], points[8])
			}
		})
	}
}

func TestHandLandmarks_Validate(t *testing.T) {
	t.Run("preset hands are valid", func(t *testing.T) {
		presets := map[string]HandLandmarks{
			"fist":        FistLandmarks(),
			"open palm":   OpenPalmLandmarks(),
			"pointing":    PointingLandmarks(),
			"victory":     VictoryLandmarks(),
			"rock":        RockLandmarks(),
			"thumbs up":   ThumbsUpLandmarks(),
			"thumbs down": ThumbsDownLandmarks(),
			"pinch":       PinchLandmarks(),
			"l shape":     LShapeLandmarks(),
		}
		for name, hand := range presets {
			if err := hand.Validate(); err != nil {
				t.Errorf("%s: Validate() = %v", name, err)
			}
		}
	})

	t.Run("nil hand", func(t *testing.T) {
		var hand *HandLandmarks
		if err := hand.Validate(); !errors.Is(err, ErrInvalidLandmarks) {
			t.Errorf("Validate() = %v, want ErrInvalidLandmarks", err)
		}
	})

	t.Run("NaN coordinate", func(t *testing.T) {
		hand := FistLandmarks()
		hand.Points[RingDIP].Y = math.NaN()
		if err := hand.Validate(); !errors.Is(err, ErrInvalidLandmarks) {
			t.Errorf("Validate() = %v, want ErrInvalidLandmarks", err)
		}
	})

	t.Run("infinite coordinate", func(t *testing.T) {
		hand := FistLandmarks()
		hand.Points[Wrist].Z = math.Inf(-1)
		if err := hand.Validate(); !errors.Is(err, ErrInvalidLandmarks) {
			t.Errorf("Validate() = %v, want ErrInvalidLandmarks", err)
		}
	})

	t.Run("thumb tip on the wrist", func(t *testing.T) {
		hand := ThumbsUpLandmarks()
		hand.Points[ThumbTip] = hand.Points[Wrist]
		if err := hand.Validate(); !errors.Is(err, ErrInvalidLandmarks) {
			t.Errorf("Validate() = %v, want ErrInvalidLandmarks", err)
		}
	})

	t.Run("coincident thumb and index bases", func(t *testing.T) {
		hand := PinchLandmarks()
		hand.Points[IndexMCP] = hand.Points[ThumbMCP]
		if err := hand.Validate(); !errors.Is(err, ErrInvalidLandmarks) {
			t.Errorf("Validate() = %v, want ErrInvalidLandmarks", err)
		}
	})

	t.Run("zero hand is degenerate", func(t *testing.T) {
		var hand HandLandmarks
		if err := hand.Validate(); !errors.Is(err, ErrInvalidLandmarks) {
			t.Errorf("Validate() = %v, want ErrInvalidLandmarks", err)
		}
	})
}

func TestJoint_String(t *testing.T) {
	tests := []struct {
		joint Joint
		want  string
	}{
		{Wrist, "wrist"},
		{ThumbIP, "thumb_ip"},
		{IndexPIP, "index_pip"},
		{PinkyTip, "pinky_tip"},
		{Joint(21), "joint(21)"},
		{Joint(-1), "joint(-1)"},
	}
	for _, tt := range tests {
		if got := tt.joint.String(); got != tt.want {
			t.Errorf("Joint(%d).String() = %q, want %q", int(tt.joint), got, tt.want)
		}
	}
}

func TestConnections(t *testing.T) {
	if len(Connections) != 21 {
		t.Fatalf("expected 21 skeleton edges, got %d", len(Connections))
	}

	degree := make(map[Joint]int)
	for _, c := range Connections {
		if c.From < Wrist || c.To > PinkyTip || c.From == c.To {
			t.Errorf("invalid connection %v-%v", c.From, c.To)
		}
		degree[c.From]++
		degree[c.To]++
	}

	for j := Wrist; j <= PinkyTip; j++ {
		if degree[j] == 0 {
			t.Errorf("joint %s is not connected", j)
		}
	}
	for _, tip := range []Joint{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip} {
		if degree[tip] != 1 {
			t.Errorf("fingertip %s has degree %d, want 1", tip, degree[tip])
		}
	}
}

func TestDistance2D(t *testing.T) {
	got := Distance2D(Point3D{X: 0, Y: 0, Z: 5}, Point3D{X: 3, Y: 4, Z: -5})
	if math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance2D() = %f, want 5 (depth ignored)", got)
	}
}

func TestParseResponse(t *testing.T) {
	t.Run("no hands", func(t *testing.T) {
		hands, err := parseResponse([]byte(`{"hands":[]}` + "\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("expected no hands, got %d", len(hands))
		}
	})

	t.Run("one hand", func(t *testing.T) {
		line := `{"hands":[{"handedness":"Left","score":0.9,"points":[`
		for i := 0; i < NumLandmarks; i++ {
			if i > 0 {
				line += ","
			}
			line += `{"x":0.5,"y":0.25,"z":0}`
		}
		line += "]}]}\n"

		hands, err := parseResponse([]byte(line))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		if hands[0].Handedness != "Left" || hands[0].Score != 0.9 {
			t.Errorf("unexpected hand metadata: %s %f", hands[0].Handedness, hands[0].Score)
		}
		if hands[0].Points[PinkyTip].Y != 0.25 {
			t.Errorf("PinkyTip.Y = %f, want 0.25", hands[0].Points[PinkyTip].Y)
		}
	})

	t.Run("short hand is rejected", func(t *testing.T) {
		_, err := parseResponse([]byte(`{"hands":[{"points":[{"x":0,"y":0,"z":0}]}]}`))
		if !errors.Is(err, ErrInvalidLandmarks) {
			t.Errorf("expected ErrInvalidLandmarks, got %v", err)
		}
	})

	t.Run("service error", func(t *testing.T) {
		_, err := parseResponse([]byte(`{"error":"decode failed"}`))
		if err == nil {
			t.Error("expected error for service error response")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := parseResponse([]byte("not json")); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestNewMediaPipeDetector_MissingScript(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScriptPath = "/nonexistent/mediapipe_service.py"

	_, err := NewMediaPipeDetector(cfg)
	if !errors.Is(err, ErrDetectorUnavailable) {
		t.Errorf("expected ErrDetectorUnavailable, got %v", err)
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()

		mock.SetHands([]HandLandmarks{
			ThumbsUpLandmarks(),
			OpenPalmLandmarks(),
		})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
		if mock.Calls() != 1 {
			t.Errorf("expected 1 call, got %d", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("Close marks detector closed", func(t *testing.T) {
		mock := NewMockDetector()

		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
		if !mock.Closed() {
			t.Error("expected detector to be closed")
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestPresetFingerPositions(t *testing.T) {
	t.Run("thumbs up thumb is extended upward", func(t *testing.T) {
		landmarks := ThumbsUpLandmarks()
		if landmarks.Points[ThumbTip].Y >= landmarks.Points[ThumbIP].Y {
			t.Error("thumb tip should be above thumb IP (lower Y value)")
		}
	})

	t.Run("fist tips sit below their reference joints", func(t *testing.T) {
		landmarks := FistLandmarks()
		pairs := [][2]Joint{
			{ThumbTip, ThumbIP},
			{IndexTip, IndexPIP},
			{MiddleTip, MiddlePIP},
			{RingTip, RingPIP},
			{PinkyTip, PinkyPIP},
		}
		for _, p := range pairs {
			if landmarks.Points[p[0]].Y < landmarks.Points[p[1]].Y {
				t.Errorf("%s should not be above %s", p[0], p[1])
			}
		}
	})

	t.Run("open palm fingers are ordered left to right", func(t *testing.T) {
		landmarks := OpenPalmLandmarks()
		if landmarks.Points[PinkyMCP].X >= landmarks.Points[RingMCP].X {
			t.Error("pinky should be to the left of ring finger")
		}
		if landmarks.Points[RingMCP].X >= landmarks.Points[MiddleMCP].X {
			t.Error("ring should be to the left of middle finger")
		}
		if landmarks.Points[MiddleMCP].X >= landmarks.Points[IndexMCP].X {
			t.Error("middle should be to the left of index finger")
		}
	})
}
