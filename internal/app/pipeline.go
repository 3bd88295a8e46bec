package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/annotate"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
)

const keyEsc = 27

// isQuitKey reports whether key is q, Q or Esc.
func isQuitKey(key int) bool {
	switch key {
	case 'q', 'Q', keyEsc:
		return true
	}
	return false
}

// processFrame runs one iteration of the loop on frame:
//
//  1. mirror the frame horizontally
//  2. detect hands (skipped while recognition is disabled)
//  3. classify and draw skeletons, boxes and labels
//  4. show the frame
//  5. notify listeners
//  6. poll the keyboard
//
// Detection and classification failures are logged and counted, and the
// unannotated frame is still shown. A detector that reports
// detector.ErrDetectorUnavailable ends the loop with that error.
// It reports whether the quit key was pressed.
func (a *App) processFrame(seq uint64, frame *gocv.Mat) (bool, error) {
	capture.Mirror(frame)

	result := FrameResult{
		Seq:   seq,
		Time:  time.Now(),
		Frame: frame,
	}

	if a.IsEnabled() {
		hands, annotations, err := a.recognize(seq, frame)
		if err != nil {
			return false, err
		}
		result.Hands, result.Annotations = hands, annotations
	}

	a.display.Show(frame)
	a.stats.recordFrame(result)

	a.mu.RLock()
	listeners := a.listeners
	a.mu.RUnlock()
	for _, l := range listeners {
		l.HandleFrame(result)
	}

	return isQuitKey(a.display.WaitKey(a.keyDelay)), nil
}

func (a *App) recognize(seq uint64, frame *gocv.Mat) ([]detector.HandLandmarks, []annotate.Annotation, error) {
	hands, err := a.detector.Detect(frame)
	if err != nil {
		a.stats.recordError()
		if errors.Is(err, detector.ErrDetectorUnavailable) {
			return nil, nil, fmt.Errorf("frame %d: %w", seq, err)
		}
		log.Printf("Error detecting hands in frame %d: %v", seq, err)
		return nil, nil, nil
	}
	if len(hands) == 0 {
		return nil, nil, nil
	}

	annotations, err := a.annotator.Annotate(frame, hands)
	if err != nil {
		a.stats.recordError()
		log.Printf("Error annotating frame %d: %v", seq, err)
		return hands, nil, nil
	}
	return hands, annotations, nil
}
