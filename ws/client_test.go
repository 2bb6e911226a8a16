package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairway_backend/internal/realtime"
)

func newTestClient(userID string) (*Client, *realtime.Hub) {
	hub := realtime.NewHub()
	client := &Client{
		UserID:  userID,
		send:    make(chan any, 8),
		manager: NewWebSocketManager(hub),
		subs:    map[channelRequest]*realtime.Subscription{},
	}
	return client, hub
}

func TestClient_FilterAllowed(t *testing.T) {
	client, _ := newTestClient("alice")

	assert.True(t, client.filterAllowed(""))
	assert.True(t, client.filterAllowed("tournament_id=t1"))
	assert.True(t, client.filterAllowed("user_id=alice"))
	assert.False(t, client.filterAllowed("user_id=bob"))
}

func TestClient_SubscribeRejectsForeignUserFilter(t *testing.T) {
	client, hub := newTestClient("alice")

	client.subscribe(channelRequest{Table: "notifications", Filter: "user_id=bob"})

	assert.Empty(t, client.subs)
	hub.Publish("notifications", "user_id=bob", "insert")
	select {
	case ev := <-client.send:
		t.Fatalf("received event for another user's channel: %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClient_SubscribeOwnNotifications(t *testing.T) {
	client, hub := newTestClient("alice")

	client.subscribe(channelRequest{Table: "notifications", Filter: "user_id=alice"})
	require.Len(t, client.subs, 1)

	hub.Publish("notifications", "user_id=alice", "insert")
	select {
	case msg := <-client.send:
		out, ok := msg.(outgoingEvent)
		require.True(t, ok)
		assert.Equal(t, "change", out.Type)
		assert.Equal(t, "notifications", out.Event.Table)
	case <-time.After(time.Second):
		t.Fatal("expected a change event")
	}
}
