package eventbus

import (
	"sync"
	"time"

	"peer-bidding/utils"
)

// Kind names a local notification delivered to the presentation layer
type Kind string

const (
	ShowLoading     Kind = "SHOW_LOADING"
	ShowBidRoom     Kind = "SHOW_BID_ROOM"
	UpdatePeerCount Kind = "UPDATE_PEER_COUNT"
	ShowSellerUI    Kind = "SHOW_SELLER_UI"
	ShowBuyerUI     Kind = "SHOW_BUYER_UI"
	MessageAdded    Kind = "MESSAGE_ADDED"
)

// Notification is one event published on the local bus
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Topic     string    `json:"topic,omitempty"`
	PeerCount int       `json:"peer_count"`
	From      string    `json:"from,omitempty"`
	Message   string    `json:"message,omitempty"`
	At        time.Time `json:"at"`
}

// Handler receives published notifications
type Handler func(Notification)

// Publisher is the write side of the bus
type Publisher interface {
	Publish(n Notification)
}

// Bus is an in-process publish/subscribe hub.
// Handlers run synchronously on the publishing goroutine and must not block.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]Handler
}

// New creates an empty bus
func New() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Subscribe registers h and returns a function that removes it
func (b *Bus) Subscribe(h Handler) (cancel func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = h
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish stamps n and hands it to every subscriber
func (b *Bus) Publish(n Notification) {
	if n.ID == "" {
		n.ID = utils.GenerateID()
	}
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(n)
	}
}

// Message builds a MessageAdded notification
func Message(from, message string) Notification {
	return Notification{Kind: MessageAdded, From: from, Message: message}
}
