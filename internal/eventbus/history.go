package eventbus

import "sync"

// History keeps the most recent notifications for late readers
type History struct {
	mu    sync.RWMutex
	limit int
	items []Notification
}

// NewHistory subscribes a bounded recorder to bus
func NewHistory(bus *Bus, limit int) *History {
	if limit <= 0 {
		limit = 100
	}
	h := &History{limit: limit}
	bus.Subscribe(h.record)
	return h
}

func (h *History) record(n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, n)
	if over := len(h.items) - h.limit; over > 0 {
		h.items = append([]Notification(nil), h.items[over:]...)
	}
}

// All returns a copy of the recorded notifications, oldest first
func (h *History) All() []Notification {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Notification(nil), h.items...)
}

// Messages returns only MessageAdded notifications, oldest first
func (h *History) Messages() []Notification {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Notification, 0, len(h.items))
	for _, n := range h.items {
		if n.Kind == MessageAdded {
			out = append(out, n)
		}
	}
	return out
}

// Last returns the newest notification of the given kind
func (h *History) Last(kind Kind) (Notification, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := len(h.items) - 1; i >= 0; i-- {
		if h.items[i].Kind == kind {
			return h.items[i], true
		}
	}
	return Notification{}, false
}
