package store

import (
	"log"

	"github.com/ayusman/mudra/internal/app"
)

// Recorder writes every recognized hand of every frame to a session.
// It implements app.Listener.
type Recorder struct {
	sessions   *SessionRepository
	detections *DetectionRepository
	session    *Session
}

// NewRecorder starts a new session for cameraID and returns a Recorder bound to it.
func NewRecorder(s *Store, cameraID int) (*Recorder, error) {
	sess, err := s.Sessions().Create(cameraID)
	if err != nil {
		return nil, err
	}
	log.Printf("Recording session %s", sess.ID)

	return &Recorder{
		sessions:   s.Sessions(),
		detections: s.Detections(),
		session:    sess,
	}, nil
}

// SessionID returns the ID of the session being recorded.
func (r *Recorder) SessionID() string {
	return r.session.ID
}

// HandleFrame stores the frame's annotations in one transaction.
// Frames without annotations write nothing.
func (r *Recorder) HandleFrame(res app.FrameResult) {
	if len(res.Annotations) == 0 {
		return
	}

	batch := make([]*Detection, 0, len(res.Annotations))
	for _, a := range res.Annotations {
		d := &Detection{
			SessionID: r.session.ID,
			FrameSeq:  res.Seq,
			HandIndex: a.Hand,
			Label:     a.Label.String(),
			Box:       a.Box,
			CreatedAt: res.Time.UTC(),
		}
		if a.Hand >= 0 && a.Hand < len(res.Hands) {
			d.Handedness = res.Hands[a.Hand].Handedness
		}
		batch = append(batch, d)
	}

	if err := r.detections.CreateBatch(batch); err != nil {
		log.Printf("Failed to record frame %d: %v", res.Seq, err)
	}
}

// Close ends the session.
func (r *Recorder) Close() error {
	return r.sessions.End(r.session.ID)
}
