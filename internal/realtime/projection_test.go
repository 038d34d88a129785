package realtime

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectionAddedIsIdempotent(t *testing.T) {
	p := NewProjection(LiveWindow)

	require.True(t, p.Apply(Event{Type: Added, ID: "messages:1", Document: "a"}))
	require.False(t, p.Apply(Event{Type: Added, ID: "messages:1", Document: "a"}))
	require.Equal(t, 1, p.Len())
}

func TestProjectionNewestFirst(t *testing.T) {
	p := NewProjection(LiveWindow)

	p.Apply(Event{Type: Added, ID: "messages:1"})
	p.Apply(Event{Type: Added, ID: "messages:2"})
	p.Apply(Event{Type: Added, ID: "messages:3"})

	require.Equal(t, []string{"messages:3", "messages:2", "messages:1"}, p.IDs())
}

func TestProjectionWindowEviction(t *testing.T) {
	p := NewProjection(3)

	for i := 1; i <= 5; i++ {
		p.Apply(Event{Type: Added, ID: fmt.Sprintf("messages:%d", i)})
	}

	require.Equal(t, []string{"messages:5", "messages:4", "messages:3"}, p.IDs())
}

func TestProjectionModified(t *testing.T) {
	p := NewProjection(LiveWindow)

	p.Apply(Event{Type: Added, ID: "messages:1", Document: "before"})
	require.True(t, p.Apply(Event{Type: Modified, ID: "messages:1", Document: "after"}))
	require.Equal(t, []interface{}{"after"}, p.Items())

	// A modify for an id outside the window changes nothing.
	require.False(t, p.Apply(Event{Type: Modified, ID: "messages:2", Document: "x"}))
	require.Equal(t, 1, p.Len())
}

func TestProjectionRemoved(t *testing.T) {
	p := NewProjection(LiveWindow)

	p.Apply(Event{Type: Added, ID: "messages:1"})
	p.Apply(Event{Type: Added, ID: "messages:2"})

	require.True(t, p.Apply(Event{Type: Removed, ID: "messages:1"}))
	require.False(t, p.Apply(Event{Type: Removed, ID: "messages:1"}))
	require.Equal(t, []string{"messages:2"}, p.IDs())
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sub := hub.Subscribe(ChannelStream("channels:1"))
	other := hub.Subscribe(ChannelStream("channels:2"))

	hub.Broadcast(ChannelStream("channels:1"), Event{Type: Added, ID: "messages:1", Document: "hello"})

	got := <-sub.C()
	require.Equal(t, Added, got.Type)
	require.Equal(t, "messages:1", got.ID)

	select {
	case e := <-other.C():
		t.Fatalf("unexpected event on other stream: %+v", e)
	default:
	}

	// A duplicate added for the same id is swallowed by the projection.
	hub.Broadcast(ChannelStream("channels:1"), Event{Type: Added, ID: "messages:1", Document: "hello"})
	hub.Broadcast(ChannelStream("channels:1"), Event{Type: Modified, ID: "messages:1", Document: "edited"})

	got = <-sub.C()
	require.Equal(t, Modified, got.Type)
	require.Equal(t, "edited", got.Document)

	hub.Unsubscribe(sub)
	_, open := <-sub.C()
	require.False(t, open)
}
