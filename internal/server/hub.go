package server

import (
	"encoding/json"
	"log"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/annotate"
	"github.com/ayusman/mudra/internal/app"
)

// clientBuffer is how many annotation messages a slow WebSocket client may fall behind
// before messages are dropped for it.
const clientBuffer = 16

// FrameMessage is the per-frame payload sent to WebSocket clients.
type FrameMessage struct {
	Seq         uint64                `json:"seq"`
	Timestamp   int64                 `json:"timestamp"`
	Hands       int                   `json:"hands"`
	Annotations []annotate.Annotation `json:"annotations"`
}

type client struct {
	send chan []byte
}

// Hub keeps the latest rendered frame for MJPEG viewers and fans annotation
// messages out to WebSocket clients. It implements app.Listener and never
// touches the camera or the detector.
type Hub struct {
	mu      sync.RWMutex
	jpeg    []byte
	seq     uint64
	updated chan struct{}
	viewers int
	clients map[*client]struct{}
	closed  chan struct{}
	once    sync.Once
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		updated: make(chan struct{}),
		clients: make(map[*client]struct{}),
		closed:  make(chan struct{}),
	}
}

// HandleFrame publishes the frame's annotations to WebSocket clients. The
// rendered frame is JPEG-encoded only while an MJPEG viewer is connected.
func (h *Hub) HandleFrame(r app.FrameResult) {
	h.mu.RLock()
	viewers := h.viewers
	h.mu.RUnlock()

	var jpeg []byte
	if viewers > 0 && r.Frame != nil && !r.Frame.Empty() {
		buf, err := gocv.IMEncode(gocv.JPEGFileExt, *r.Frame)
		if err != nil {
			log.Printf("hub: failed to encode frame %d: %v", r.Seq, err)
		} else {
			jpeg = append([]byte(nil), buf.GetBytes()...)
			buf.Close()
		}
	}

	anns := r.Annotations
	if anns == nil {
		anns = []annotate.Annotation{}
	}
	msg, err := json.Marshal(FrameMessage{
		Seq:         r.Seq,
		Timestamp:   r.Time.UnixMilli(),
		Hands:       len(r.Hands),
		Annotations: anns,
	})
	if err != nil {
		log.Printf("hub: failed to marshal frame %d: %v", r.Seq, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if jpeg != nil {
		h.jpeg = jpeg
		h.seq = r.Seq
		close(h.updated)
		h.updated = make(chan struct{})
	}

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Latest returns the most recent JPEG frame and its sequence number.
// The sequence number is zero until a frame arrives while a viewer is watching.
func (h *Hub) Latest() ([]byte, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.jpeg, h.seq
}

// Clients returns the number of connected WebSocket clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Viewers returns the number of connected MJPEG viewers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.viewers
}

// watch registers an MJPEG viewer and returns the func that removes it.
func (h *Hub) watch() func() {
	h.mu.Lock()
	h.viewers++
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		h.viewers--
		h.mu.Unlock()
	}
}

func (h *Hub) subscribe() *client {
	c := &client{send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	return c
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Close disconnects every stream and WebSocket client.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.closed) })
}

// Done is closed once the Hub is closed.
func (h *Hub) Done() <-chan struct{} {
	return h.closed
}

// waitFrame blocks until a frame newer than after is published.
// It returns false when done or the Hub is closed first.
func (h *Hub) waitFrame(after uint64, done <-chan struct{}) ([]byte, uint64, bool) {
	for {
		h.mu.RLock()
		jpeg, seq, updated := h.jpeg, h.seq, h.updated
		h.mu.RUnlock()

		if seq > after && jpeg != nil {
			return jpeg, seq, true
		}

		select {
		case <-updated:
		case <-done:
			return nil, 0, false
		case <-h.closed:
			return nil, 0, false
		}
	}
}
