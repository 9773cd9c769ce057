package overlay

import "context"

// Handler receives connection events from a Network.
// Calls may arrive from any goroutine; implementations must not block.
type Handler interface {
	HandleConnect(peer string)
	HandleData(peer string, data []byte)
	HandleDisconnect(peer string, err error)
}

// Network is the peer overlay the bidding core runs on
type Network interface {
	// LocalID is the stable identity other peers see for this node
	LocalID() string
	// SetHandler installs the event receiver; it must be called before Join
	SetHandler(h Handler)
	// Join participates in topic and returns the peers connected once discovery settles
	Join(ctx context.Context, topic string) ([]string, error)
	// Write sends one frame to a connected peer
	Write(peer string, data []byte) error
	// Peers lists connected peer identities in sorted order
	Peers() []string
	Close() error
}

type nopHandler struct{}

func (nopHandler) HandleConnect(string)           {}
func (nopHandler) HandleData(string, []byte)      {}
func (nopHandler) HandleDisconnect(string, error) {}
