package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"boardsync/internal/realtime"

	"github.com/stretchr/testify/assert"
)

// gatewayStub serves the hub the way the real gateway does: GET
// /events/:room streams, POST /events publishes.
func gatewayStub(hub *realtime.Hub) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/", func(w http.ResponseWriter, r *http.Request) {
		room := strings.TrimPrefix(r.URL.Path, "/events/")
		hub.ServeSSE(w, r, room, 50*time.Millisecond)
	})
	mux.HandleFunc("POST /events", func(w http.ResponseWriter, r *http.Request) {
		var ev realtime.Event
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		hub.Publish(ev)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestBridge_JoinReceivesPublishedEvents(t *testing.T) {
	// Arrange
	hub := realtime.NewHub()
	srv := httptest.NewServer(gatewayStub(hub))
	defer srv.Close()

	bridge := realtime.NewBridge(srv.URL, srv.Client())
	room := realtime.BoardRoom("b1")

	sub, err := bridge.Join(context.Background(), room)
	assert.NoError(t, err)

	received := make(chan realtime.Event, 1)
	sub.On(realtime.EventBoardChanged, func(ev realtime.Event) {
		received <- ev
	})

	// Ждём, пока подписка дойдёт до хаба
	assert.Eventually(t, func() bool { return hub.RoomSize(room) == 1 },
		time.Second, 10*time.Millisecond)

	// Act: другой клиент рассылает обновлённую доску
	ev, _ := realtime.NewEvent(realtime.EventBoardChanged, room, map[string]string{"_id": "b1", "title": "fresh"})
	assert.NoError(t, bridge.Emit(context.Background(), ev))

	// Assert
	select {
	case got := <-received:
		assert.Equal(t, realtime.EventBoardChanged, got.Type)
		assert.Contains(t, string(got.Payload), "fresh")
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	sub.Close()
}

func TestBridge_CloseLeavesRoomExactlyOnce(t *testing.T) {
	// Arrange
	hub := realtime.NewHub()
	srv := httptest.NewServer(gatewayStub(hub))
	defer srv.Close()

	bridge := realtime.NewBridge(srv.URL, srv.Client())
	room := realtime.CardRoom("card1")

	// Mount
	sub, err := bridge.Join(context.Background(), room)
	assert.NoError(t, err)
	assert.Eventually(t, func() bool { return hub.RoomSize(room) == 1 },
		time.Second, 10*time.Millisecond)

	// Unmount: Close идемпотентен
	sub.Close()
	sub.Close()

	assert.Eventually(t, func() bool { return hub.RoomSize(room) == 0 },
		time.Second, 10*time.Millisecond)
}

func TestBridge_HandlersScopedToEventType(t *testing.T) {
	hub := realtime.NewHub()
	srv := httptest.NewServer(gatewayStub(hub))
	defer srv.Close()

	bridge := realtime.NewBridge(srv.URL, srv.Client())
	room := realtime.BoardRoom("b1")

	sub, err := bridge.Join(context.Background(), room)
	assert.NoError(t, err)
	defer sub.Close()

	boardEvents := make(chan realtime.Event, 4)
	cardEvents := make(chan realtime.Event, 4)
	sub.On(realtime.EventBoardChanged, func(ev realtime.Event) { boardEvents <- ev })
	sub.On(realtime.EventCardChanged, func(ev realtime.Event) { cardEvents <- ev })

	assert.Eventually(t, func() bool { return hub.RoomSize(room) == 1 },
		time.Second, 10*time.Millisecond)

	ev, _ := realtime.NewEvent(realtime.EventCardChanged, room, map[string]string{"_id": "card9"})
	assert.NoError(t, bridge.Emit(context.Background(), ev))

	select {
	case got := <-cardEvents:
		assert.Contains(t, string(got.Payload), "card9")
	case <-time.After(2 * time.Second):
		t.Fatal("card event not delivered")
	}
	assert.Empty(t, boardEvents)
}
