package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// maxClassifyBody bounds the request body of POST /api/classify.
const maxClassifyBody = 64 << 10

// ClassifyHandler classifies landmark sets posted by clients.
type ClassifyHandler struct{}

// NewClassifyHandler creates a new ClassifyHandler.
func NewClassifyHandler() *ClassifyHandler {
	return &ClassifyHandler{}
}

// RegisterRoutes mounts the handler on r.
func (h *ClassifyHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/classify", h.classify)
}

type classifyRequest struct {
	Points     []detector.Point3D `json:"points"`
	Handedness string             `json:"handedness,omitempty"`
}

type classifyResponse struct {
	Label      gesture.Label   `json:"label"`
	Fingers    gesture.Fingers `json:"fingers"`
	ThumbAngle float64         `json:"thumb_angle"`
}

// classify handles POST /api/classify.
func (h *ClassifyHandler) classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxClassifyBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	hand, err := detector.FromPoints(req.Points)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hand.Handedness = req.Handedness

	label, err := gesture.Classify(&hand)
	if err != nil {
		if errors.Is(err, detector.ErrInvalidLandmarks) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to classify")
		return
	}

	writeJSON(w, http.StatusOK, classifyResponse{
		Label:      label,
		Fingers:    gesture.Extension(&hand),
		ThumbAngle: gesture.ThumbAngle(&hand),
	})
}
