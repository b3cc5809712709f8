package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Hub fans events out to the subscribers of a room. Subscriber channels are
// buffered and slow subscribers drop events rather than block the
// publisher; a client that misses an event recovers by refetching the
// resource on next navigation.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[chan []byte]struct{})}
}

// Subscribe joins a room and returns the subscriber channel plus a cancel
// func that leaves the room. Cancel is idempotent; every join must be
// paired with exactly one leave.
func (h *Hub) Subscribe(room string) (ch chan []byte, cancel func()) {
	ch = make(chan []byte, 16)
	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[chan []byte]struct{})
	}
	h.rooms[room][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			if subs, ok := h.rooms[room]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(h.rooms, room)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers the event to every subscriber of its room.
func (h *Hub) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.mu.RLock()
	for ch := range h.rooms[ev.Room] {
		select {
		case ch <- data:
		default: // drop if slow
		}
	}
	h.mu.RUnlock()
}

// RoomSize returns the current number of subscribers in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ServeSSE streams a room's events over a single server-sent-events
// connection until the request context ends. Joining happens on connect
// and the matching leave on disconnect.
func (h *Hub) ServeSSE(w http.ResponseWriter, r *http.Request, room string, heartbeat time.Duration) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := h.Subscribe(room)
	defer cancel()

	// Initial comment to open the stream
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			// heartbeat comment to keep connection alive through proxies
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(msg)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
