package realtime_test

import (
	"encoding/json"
	"testing"

	"boardsync/internal/realtime"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesRoomSubscribers(t *testing.T) {
	// Arrange
	hub := realtime.NewHub()
	room := realtime.BoardRoom("b1")
	ch, cancel := hub.Subscribe(room)
	defer cancel()

	otherCh, otherCancel := hub.Subscribe(realtime.BoardRoom("b2"))
	defer otherCancel()

	// Act
	ev, err := realtime.NewEvent(realtime.EventBoardChanged, room, map[string]string{"_id": "b1"})
	assert.NoError(t, err)
	hub.Publish(ev)

	// Assert: подписчик комнаты получил событие
	raw := <-ch
	var got realtime.Event
	assert.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, realtime.EventBoardChanged, got.Type)
	assert.Equal(t, room, got.Room)

	// Подписчику другой комнаты ничего не приходит
	select {
	case msg := <-otherCh:
		t.Fatalf("unexpected event in other room: %s", msg)
	default:
	}
}

func TestHub_JoinLeaveSymmetry(t *testing.T) {
	hub := realtime.NewHub()
	room := realtime.CardRoom("card1")

	assert.Equal(t, 0, hub.RoomSize(room))

	// Mount: ровно один join
	_, cancel := hub.Subscribe(room)
	assert.Equal(t, 1, hub.RoomSize(room))

	// Unmount: ровно один leave, повторный cancel ничего не меняет
	cancel()
	assert.Equal(t, 0, hub.RoomSize(room))
	cancel()
	assert.Equal(t, 0, hub.RoomSize(room))
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := realtime.NewHub()
	room := realtime.BoardRoom("b1")
	ch, cancel := hub.Subscribe(room)
	defer cancel()

	ev, _ := realtime.NewEvent(realtime.EventBoardChanged, room, "x")
	// Переполняем буфер канала; Publish не должен блокироваться
	for i := 0; i < 100; i++ {
		hub.Publish(ev)
	}
	assert.Len(t, ch, cap(ch))
}

func TestHub_PublishToEmptyRoomIsNoop(t *testing.T) {
	hub := realtime.NewHub()
	ev, _ := realtime.NewEvent(realtime.EventCardChanged, realtime.CardRoom("none"), "x")
	hub.Publish(ev) // не должно паниковать
	assert.Equal(t, 0, hub.RoomSize(realtime.CardRoom("none")))
}
