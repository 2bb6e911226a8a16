package realtime

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHub_PublishInvokesMatchingCallback(t *testing.T) {
	hub := NewHub()

	var got atomic.Int32
	var last Event
	var mu sync.Mutex

	sub := hub.Subscribe("messages", "tournament_id=t1", func(e Event) {
		mu.Lock()
		last = e
		mu.Unlock()
		got.Add(1)
	})
	defer sub.Unsubscribe()

	hub.Publish("messages", "tournament_id=t1", "insert")
	waitFor(t, func() bool { return got.Load() == 1 })

	mu.Lock()
	assert.Equal(t, "messages", last.Table)
	assert.Equal(t, "insert", last.Action)
	mu.Unlock()

	// A different filter on the same table does not reach the listener.
	hub.Publish("messages", "tournament_id=t2", "insert")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), got.Load())
}

func TestHub_UnfilteredListenerSeesAllTableEvents(t *testing.T) {
	hub := NewHub()

	var got atomic.Int32
	sub := hub.Subscribe("notifications", "", func(Event) { got.Add(1) })
	defer sub.Unsubscribe()

	hub.Publish("notifications", "user_id=a", "insert")
	hub.Publish("notifications", "user_id=b", "insert")
	waitFor(t, func() bool { return got.Load() == 2 })
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe("rounds", "id=r1", func(Event) {})
	assert.Equal(t, 1, hub.SubscriberCount("rounds", "id=r1"))

	assert.NotPanics(t, func() {
		sub.Unsubscribe()
		sub.Unsubscribe()
	})
	assert.Equal(t, 0, hub.SubscriberCount("rounds", "id=r1"))
}

func TestHub_IndependentSubscriptions(t *testing.T) {
	hub := NewHub()

	var msgs, rounds atomic.Int32
	s1 := hub.Subscribe("messages", "tournament_id=t1", func(Event) { msgs.Add(1) })
	s2 := hub.Subscribe("rounds", "tournament_id=t1", func(Event) { rounds.Add(1) })

	// Tear down in the opposite order of establishment.
	s1.Unsubscribe()
	hub.Publish("rounds", "tournament_id=t1", "update")
	waitFor(t, func() bool { return rounds.Load() == 1 })
	assert.Equal(t, int32(0), msgs.Load())

	s2.Unsubscribe()
	hub.Publish("rounds", "tournament_id=t1", "update")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), rounds.Load())
}

func TestHub_PanickingCallbackDoesNotAffectOthers(t *testing.T) {
	hub := NewHub()

	var got atomic.Int32
	s1 := hub.Subscribe("messages", "t", func(Event) { panic("boom") })
	s2 := hub.Subscribe("messages", "t", func(Event) { got.Add(1) })
	defer s1.Unsubscribe()
	defer s2.Unsubscribe()

	hub.Publish("messages", "t", "insert")
	waitFor(t, func() bool { return got.Load() == 1 })
}

func TestHub_BroadcastReachesEveryFilterOnTable(t *testing.T) {
	hub := NewHub()

	var t1Events, t2Events, otherTable atomic.Int32

	s1 := hub.Subscribe("messages", "tournament_id=t1", func(e Event) {
		assert.Equal(t, "tournament_id=t1", e.Filter)
		t1Events.Add(1)
	})
	defer s1.Unsubscribe()
	s2 := hub.Subscribe("messages", "tournament_id=t2", func(e Event) {
		assert.Equal(t, "tournament_id=t2", e.Filter)
		t2Events.Add(1)
	})
	defer s2.Unsubscribe()
	s3 := hub.Subscribe("rounds", "tournament_id=t1", func(Event) {
		otherTable.Add(1)
	})
	defer s3.Unsubscribe()

	hub.Broadcast("messages", "refresh")

	waitFor(t, func() bool { return t1Events.Load() == 1 && t2Events.Load() == 1 })
	assert.Equal(t, int32(0), otherTable.Load())
}
