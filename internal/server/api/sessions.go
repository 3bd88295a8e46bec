package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/mudra/internal/store"
)

// defaultDetectionLimit caps GET /api/sessions/{id}/detections without a limit parameter.
const defaultDetectionLimit = 500

// SessionHandler serves recorded sessions and their detections.
type SessionHandler struct {
	store *store.Store
}

// NewSessionHandler creates a new SessionHandler with the given store.
func NewSessionHandler(s *store.Store) *SessionHandler {
	return &SessionHandler{store: s}
}

// RegisterRoutes mounts the handler on r.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Get("/", h.list)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Get("/detections", h.detections)
			r.Get("/summary", h.summary)
		})
	})
}

type listSessionsResponse struct {
	Sessions []*store.Session `json:"sessions"`
}

type detectionsResponse struct {
	SessionID  string             `json:"session_id"`
	Detections []*store.Detection `json:"detections"`
}

type summaryResponse struct {
	SessionID string             `json:"session_id"`
	Total     int                `json:"total"`
	Labels    []store.LabelCount `json:"labels"`
}

// list handles GET /api/sessions.
func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []*store.Session{}
	}

	writeJSON(w, http.StatusOK, listSessionsResponse{Sessions: sessions})
}

// get handles GET /api/sessions/{id}.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// detections handles GET /api/sessions/{id}/detections?limit=N.
func (h *SessionHandler) detections(w http.ResponseWriter, r *http.Request) {
	limit := defaultDetectionLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	sess, ok := h.lookup(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	detections, err := h.store.Detections().ListBySession(sess.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list detections")
		return
	}
	if detections == nil {
		detections = []*store.Detection{}
	}

	writeJSON(w, http.StatusOK, detectionsResponse{SessionID: sess.ID, Detections: detections})
}

// summary handles GET /api/sessions/{id}/summary.
func (h *SessionHandler) summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	counts, err := h.store.Detections().CountByLabel(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to summarize session")
		return
	}

	resp := summaryResponse{SessionID: sess.ID, Labels: counts}
	if resp.Labels == nil {
		resp.Labels = []store.LabelCount{}
	}
	for _, c := range counts {
		resp.Total += c.Count
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) lookup(w http.ResponseWriter, id string) (*store.Session, bool) {
	sess, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return nil, false
	}
	return sess, true
}
