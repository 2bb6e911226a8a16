package realtime

import (
	"sync"

	"fairway_backend/internal/logger"
)

// Event is a change hint for a table row set. It intentionally carries no
// row payload: consumers re-fetch authoritative state instead of trusting
// a pushed snapshot.
type Event struct {
	Table  string `json:"table"`
	Filter string `json:"filter"`
	Action string `json:"action"` // "insert", "update", "delete", "refresh"
}

// Subscription is a handle for one (table, filter) listener.
// Unsubscribe is idempotent.
type Subscription struct {
	hub      *Hub
	table    string
	filter   string
	id       uint64
	callback func(Event)
	once     sync.Once
}

// Unsubscribe detaches the listener and releases the slot. Safe to call
// more than once and safe to call concurrently with Publish.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

type subKey struct {
	table  string
	filter string
}

// Hub fans change events out to listeners keyed by table and filter.
// Callbacks run asynchronously; delivery is at-least-once per published
// event and unordered across listeners.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[subKey]map[uint64]*Subscription
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[subKey]map[uint64]*Subscription),
	}
}

// Subscribe registers callback for changes on table rows matching filter.
// An empty filter matches every event on the table.
func (h *Hub) Subscribe(table, filter string, callback func(Event)) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		hub:      h,
		table:    table,
		filter:   filter,
		id:       h.nextID,
		callback: callback,
	}

	key := subKey{table: table, filter: filter}
	if h.subs[key] == nil {
		h.subs[key] = make(map[uint64]*Subscription)
	}
	h.subs[key][sub.id] = sub

	return sub
}

// Publish notifies all listeners on (table, filter) plus the table's
// unfiltered listeners. Each callback runs in its own goroutine so a slow
// consumer never blocks the writer.
func (h *Hub) Publish(table, filter, action string) {
	event := Event{Table: table, Filter: filter, Action: action}

	h.mu.RLock()
	var targets []*Subscription
	for _, sub := range h.subs[subKey{table: table, filter: filter}] {
		targets = append(targets, sub)
	}
	if filter != "" {
		for _, sub := range h.subs[subKey{table: table, filter: ""}] {
			targets = append(targets, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range targets {
		go func(s *Subscription) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("realtime callback panicked", "table", event.Table, "panic", r)
				}
			}()
			s.callback(event)
		}(sub)
	}
}

// Broadcast notifies every listener on the table regardless of filter.
// Each listener receives the event tagged with its own filter.
func (h *Hub) Broadcast(table, action string) {
	h.mu.RLock()
	var targets []*Subscription
	for key, subs := range h.subs {
		if key.table != table {
			continue
		}
		for _, sub := range subs {
			targets = append(targets, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range targets {
		event := Event{Table: table, Filter: sub.filter, Action: action}
		go func(s *Subscription, e Event) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("realtime callback panicked", "table", e.Table, "panic", r)
				}
			}()
			s.callback(e)
		}(sub, event)
	}
}

// SubscriberCount reports listeners for one (table, filter) pair.
func (h *Hub) SubscriberCount(table, filter string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[subKey{table: table, filter: filter}])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := subKey{table: sub.table, filter: sub.filter}
	if listeners, ok := h.subs[key]; ok {
		delete(listeners, sub.id)
		if len(listeners) == 0 {
			delete(h.subs, key)
		}
	}
}
