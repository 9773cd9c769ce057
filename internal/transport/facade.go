package transport

import (
	"fmt"
	"peer-bidding/internal/biddingerrors"
	"peer-bidding/internal/overlay"
	"peer-bidding/internal/protocol"
	"peer-bidding/utils"
	"slices"
)

// Facade encodes commands and writes them to peers of an overlay network
type Facade struct {
	net overlay.Network
}

// NewFacade wraps net
func NewFacade(net overlay.Network) *Facade {
	return &Facade{net: net}
}

// Broadcast writes the command to every connected peer.
// Delivery is best-effort: per-peer failures are logged and the rest still receive it.
func (f *Facade) Broadcast(cmd protocol.Command, data any) error {
	frame, err := protocol.Encode(cmd, data)
	if err != nil {
		return fmt.Errorf("transport: broadcast: %w", err)
	}

	for _, peer := range f.net.Peers() {
		if err := f.net.Write(peer, frame); err != nil {
			utils.Warn("transport: broadcast write failed", map[string]any{
				"peer":    peer,
				"command": cmd,
				"error":   err.Error(),
			})
		}
	}
	return nil
}

// Unicast writes the command to one peer; it fails with ErrPeerNotFound when the peer is gone
func (f *Facade) Unicast(peer string, cmd protocol.Command, data any) error {
	if !slices.Contains(f.net.Peers(), peer) {
		return fmt.Errorf("transport: unicast %s to %s: %w", cmd, peer, biddingerrors.ErrPeerNotFound)
	}

	frame, err := protocol.Encode(cmd, data)
	if err != nil {
		return fmt.Errorf("transport: unicast: %w", err)
	}
	if err := f.net.Write(peer, frame); err != nil {
		return fmt.Errorf("transport: unicast %s to %s: %w", cmd, peer, err)
	}
	return nil
}

// Peers lists the identities of connected peers
func (f *Facade) Peers() []string {
	return f.net.Peers()
}
