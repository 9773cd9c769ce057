package overlay

import (
	"context"
	"fmt"
	"peer-bidding/internal/biddingerrors"
	"sort"
	"sync"
)

// Hub is an in-process overlay; every node joined to the same topic is linked to every other
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[string]*MemoryNode
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[string]*MemoryNode)}
}

// Node creates a node with the given identity attached to the hub
func (h *Hub) Node(id string) *MemoryNode {
	return &MemoryNode{
		id:      id,
		hub:     h,
		handler: nopHandler{},
		links:   make(map[string]*MemoryNode),
	}
}

// MemoryNode is a Network backed by a Hub
type MemoryNode struct {
	id  string
	hub *Hub

	mu      sync.RWMutex
	handler Handler
	topic   string
	links   map[string]*MemoryNode
}

var _ Network = (*MemoryNode)(nil)

func (n *MemoryNode) LocalID() string { return n.id }

func (n *MemoryNode) SetHandler(h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handler = h
}

func (n *MemoryNode) currentHandler() Handler {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.handler
}

// Join links n to every node already on topic and notifies both ends
func (n *MemoryNode) Join(ctx context.Context, topic string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n.hub.mu.Lock()
	members, ok := n.hub.topics[topic]
	if !ok {
		members = make(map[string]*MemoryNode)
		n.hub.topics[topic] = members
	}
	var existing []*MemoryNode
	for id, other := range members {
		if id != n.id {
			existing = append(existing, other)
		}
	}
	members[n.id] = n
	n.hub.mu.Unlock()

	n.mu.Lock()
	n.topic = topic
	for _, other := range existing {
		n.links[other.id] = other
	}
	n.mu.Unlock()

	for _, other := range existing {
		other.mu.Lock()
		other.links[n.id] = n
		other.mu.Unlock()
	}
	for _, other := range existing {
		other.currentHandler().HandleConnect(n.id)
		n.currentHandler().HandleConnect(other.id)
	}
	return n.Peers(), nil
}

// Write delivers data to peer synchronously
func (n *MemoryNode) Write(peer string, data []byte) error {
	n.mu.RLock()
	other, ok := n.links[peer]
	n.mu.RUnlock()
	if !ok {
		return fmt.Errorf("overlay: write to %s: %w", peer, biddingerrors.ErrPeerNotFound)
	}
	frame := append([]byte(nil), data...)
	other.currentHandler().HandleData(n.id, frame)
	return nil
}

func (n *MemoryNode) Peers() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	peers := make([]string, 0, len(n.links))
	for id := range n.links {
		peers = append(peers, id)
	}
	sort.Strings(peers)
	return peers
}

// Close leaves the topic and notifies every linked node
func (n *MemoryNode) Close() error {
	n.mu.Lock()
	topic := n.topic
	links := n.links
	n.links = make(map[string]*MemoryNode)
	n.topic = ""
	n.mu.Unlock()

	n.hub.mu.Lock()
	if members, ok := n.hub.topics[topic]; ok {
		delete(members, n.id)
	}
	n.hub.mu.Unlock()

	for _, other := range links {
		other.mu.Lock()
		delete(other.links, n.id)
		other.mu.Unlock()
		other.currentHandler().HandleDisconnect(n.id, nil)
	}
	return nil
}
