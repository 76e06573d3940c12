package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyRecipient(t *testing.T) {
	hub := NewHub(4)

	janeEvents, closeJane := hub.Subscribe("2")
	defer closeJane()
	mikeEvents, closeMike := hub.Subscribe("3")
	defer closeMike()

	n := hub.Publish(Event{UserID: "2", Event: "notification", Data: "Leave Approved"})
	assert.Equal(t, 1, n)

	select {
	case ev := <-janeEvents:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, "Leave Approved", ev.Data)
	default:
		t.Fatal("expected an event for employee 2")
	}

	select {
	case ev := <-mikeEvents:
		t.Fatalf("unexpected event for employee 3: %+v", ev)
	default:
	}
}

func TestHub_FullBufferDropsEvent(t *testing.T) {
	hub := NewHub(1)
	_, cleanup := hub.Subscribe("2")
	defer cleanup()

	assert.Equal(t, 1, hub.Publish(Event{UserID: "2", Event: "a"}))
	assert.Equal(t, 0, hub.Publish(Event{UserID: "2", Event: "b"}))
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub(0)
	events, cleanup := hub.Subscribe("2")
	require.Equal(t, 1, hub.SubscriberCount("2"))

	cleanup()
	cleanup()

	assert.Equal(t, 0, hub.SubscriberCount("2"))
	_, open := <-events
	assert.False(t, open)
	assert.Equal(t, 0, hub.Publish(Event{UserID: "2"}))
}

func TestHub_CloseEndsStreams(t *testing.T) {
	hub := NewHub(4)
	events, cleanup := hub.Subscribe("2")

	hub.Close()
	_, ok := <-events
	assert.False(t, ok)
	assert.Equal(t, 0, hub.SubscriberCount("2"))
	cleanup() // no double close

	late, lateCleanup := hub.Subscribe("2")
	defer lateCleanup()
	_, ok = <-late
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Publish(Event{UserID: "2", Event: "a"}))
}
