package app

import (
	"sync/atomic"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
)

// Stats holds loop counters. All methods are safe for concurrent use.
type Stats struct {
	frames       atomic.Int64
	hands        atomic.Int64
	annotations  atomic.Int64
	detectErrors atomic.Int64
	lastLabel    atomic.Int64
	lastFrame    atomic.Int64
	started      atomic.Int64

	// labels is built once and only its values change afterwards.
	labels map[gesture.Label]*atomic.Int64
}

// NewStats returns zeroed counters.
func NewStats() *Stats {
	s := &Stats{labels: make(map[gesture.Label]*atomic.Int64)}
	for _, l := range gesture.Labels() {
		s.labels[l] = new(atomic.Int64)
	}
	return s
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Frames       int64            `json:"frames"`
	Hands        int64            `json:"hands"`
	Annotations  int64            `json:"annotations"`
	DetectErrors int64            `json:"detect_errors"`
	Labels       map[string]int64 `json:"labels"`
	LastLabel    gesture.Label    `json:"last_label"`
	LastFrame    time.Time        `json:"last_frame,omitzero"`
	Started      time.Time        `json:"started,omitzero"`
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Frames:       s.frames.Load(),
		Hands:        s.hands.Load(),
		Annotations:  s.annotations.Load(),
		DetectErrors: s.detectErrors.Load(),
		Labels:       make(map[string]int64, len(s.labels)),
		LastLabel:    gesture.Label(s.lastLabel.Load()),
	}
	for l, n := range s.labels {
		if v := n.Load(); v > 0 {
			snap.Labels[l.String()] = v
		}
	}
	if ns := s.lastFrame.Load(); ns != 0 {
		snap.LastFrame = time.Unix(0, ns)
	}
	if ns := s.started.Load(); ns != 0 {
		snap.Started = time.Unix(0, ns)
	}
	return snap
}

// Frames returns the number of frames processed.
func (s *Stats) Frames() int64 { return s.frames.Load() }

// DetectErrors returns the number of frames whose detection or classification failed.
func (s *Stats) DetectErrors() int64 { return s.detectErrors.Load() }

// LastLabel returns the most recent recognized gesture, or Unknown.
func (s *Stats) LastLabel() gesture.Label { return gesture.Label(s.lastLabel.Load()) }

// LabelCount returns how many times l has been recognized.
func (s *Stats) LabelCount(l gesture.Label) int64 {
	if n, ok := s.labels[l]; ok {
		return n.Load()
	}
	return 0
}

func (s *Stats) markStarted() {
	s.started.Store(time.Now().UnixNano())
}

func (s *Stats) recordError() {
	s.detectErrors.Add(1)
}

func (s *Stats) recordFrame(r FrameResult) {
	s.frames.Add(1)
	s.lastFrame.Store(r.Time.UnixNano())
	s.hands.Add(int64(len(r.Hands)))
	s.annotations.Add(int64(len(r.Annotations)))

	for _, a := range r.Annotations {
		if n, ok := s.labels[a.Label]; ok {
			n.Add(1)
		}
		s.lastLabel.Store(int64(a.Label))
	}
}
