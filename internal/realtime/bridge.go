package realtime

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Bridge is the client side of the push channel: it joins rooms on the
// gateway's event stream and emits mutation broadcasts back to it.
type Bridge struct {
	baseURL   string
	httpc     *http.Client
	authToken string
}

type BridgeOption func(*Bridge)

// WithAuthToken attaches the gateway session token to every stream and
// emit request.
func WithAuthToken(token string) BridgeOption {
	return func(b *Bridge) { b.authToken = token }
}

// NewBridge builds a bridge against the gateway base URL. Pass the same
// http.Client the REST wrappers use so the session cookie travels with the
// stream request; nil falls back to http.DefaultClient.
func NewBridge(baseURL string, httpc *http.Client, opts ...BridgeOption) *Bridge {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	b := &Bridge{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bridge) authorize(req *http.Request) {
	if b.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.authToken)
	}
}

// Subscription is a joined room. The lifecycle is strictly
// unsubscribed -> subscribed (Join) -> unsubscribed (Close): Close is
// idempotent and always produces exactly one leave for the one join.
type Subscription struct {
	Room string

	mu       sync.RWMutex
	handlers map[string][]func(Event)

	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

// On registers a handler for an event type. Registration after Close is a
// no-op because the reader has already stopped.
func (s *Subscription) On(eventType string, handler func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[eventType] = append(s.handlers[eventType], handler)
}

// Close leaves the room. Safe to call more than once and from teardown
// paths; only the first call sends the leave.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.cancel()
	})
	<-s.done
}

// Done is closed once the subscription has fully detached.
func (s *Subscription) Done() <-chan struct{} { return s.done }

func (s *Subscription) dispatch(ev Event) {
	s.mu.RLock()
	handlers := append(([]func(Event))(nil), s.handlers[ev.Type]...)
	s.mu.RUnlock()
	for _, h := range handlers {
		h(ev)
	}
}

// Join opens the room's event stream and starts dispatching incoming
// events to registered handlers. The returned subscription must be closed
// on view teardown.
func (b *Bridge) Join(ctx context.Context, room string) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/events/"+room, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	b.authorize(req)

	resp, err := b.httpc.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("join %s: unexpected status %d", room, resp.StatusCode)
	}

	sub := &Subscription{
		Room:     room,
		handlers: make(map[string][]func(Event)),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer resp.Body.Close()
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		var data bytes.Buffer
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == "":
				if data.Len() > 0 {
					var ev Event
					if err := json.Unmarshal(data.Bytes(), &ev); err == nil {
						sub.dispatch(ev)
					}
					data.Reset()
				}
			case strings.HasPrefix(line, "data: "):
				data.WriteString(strings.TrimPrefix(line, "data: "))
			case strings.HasPrefix(line, ":"):
				// heartbeat comment
			}
		}
	}()

	return sub, nil
}

// Emit posts a mutation broadcast to the gateway, which relays it to every
// other subscriber of the event's room. Fire-and-forget: no ack, no retry.
func (b *Bridge) Emit(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	b.authorize(req)

	resp, err := b.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("emit %s: unexpected status %d", ev.Type, resp.StatusCode)
	}
	return nil
}
