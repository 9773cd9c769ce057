package router

import (
	"errors"
	"fmt"
	"peer-bidding/internal/biddingerrors"
	"peer-bidding/internal/eventbus"
	"peer-bidding/internal/protocol"
	"peer-bidding/utils"
	"strings"
)

// Labels used as the "from" of locally published messages
const (
	FromAll   = "ALL"
	FromError = "ERROR"
)

const invalidOfferMessage = "Invalid input for placing price!"

// Transport sends commands to connected peers
type Transport interface {
	Broadcast(cmd protocol.Command, data any) error
	Unicast(peer string, cmd protocol.Command, data any) error
	Peers() []string
}

// BidProtocol is the state machine the router drives
type BidProtocol interface {
	CreateBid(owner, itemID, price string) (string, error)
	PlacePrice(buyer, itemID, price string) (string, error)
	CloseBid(closer, itemID string) (string, error)
}

// CommandRouter turns peer messages and local intents into bid mutations,
// outbound commands and local notifications.
type CommandRouter struct {
	localID   string
	bids      BidProtocol
	transport Transport
	bus       eventbus.Publisher
}

// New creates a router acting on behalf of localID
func New(localID string, bids BidProtocol, transport Transport, bus eventbus.Publisher) *CommandRouter {
	return &CommandRouter{
		localID:   localID,
		bids:      bids,
		transport: transport,
		bus:       bus,
	}
}

// LocalID is the identity this router acts for
func (r *CommandRouter) LocalID() string { return r.localID }

// HandleMessage dispatches one frame received from peer.
// Unknown or malformed frames are logged and dropped; the returned error is informational only.
func (r *CommandRouter) HandleMessage(peer string, raw []byte) error {
	msg, err := protocol.Decode(raw)
	if err != nil {
		utils.Warn("router: dropping malformed message", map[string]any{"peer": peer, "error": err.Error()})
		return fmt.Errorf("router: %w", err)
	}

	if !msg.Command.Known() {
		utils.Warn("router: no handler for command", map[string]any{"peer": peer, "command": msg.Command})
		return fmt.Errorf("router: %w: %s", biddingerrors.ErrUnknownCommand, msg.Command)
	}

	switch msg.Command {
	case protocol.CmdSendMessageLocally:
		return r.handleDisplay(peer, msg)
	case protocol.CmdPeerPlacePrice:
		return r.handlePlacePrice(peer, msg)
	case protocol.CmdError:
		return r.handleError(peer, msg)
	default:
		utils.Error("router: known command without a route", map[string]any{"peer": peer, "command": msg.Command})
		return fmt.Errorf("router: %w: %s", biddingerrors.ErrUnknownCommand, msg.Command)
	}
}

func (r *CommandRouter) handleDisplay(peer string, msg protocol.SwarmMessage) error {
	text, err := msg.Text()
	if err != nil {
		utils.Warn("router: dropping display message", map[string]any{"peer": peer, "error": err.Error()})
		return fmt.Errorf("router: %w", err)
	}
	r.bus.Publish(eventbus.Message(utils.ShortLabel(peer), text))
	return nil
}

func (r *CommandRouter) handleError(peer string, msg protocol.SwarmMessage) error {
	text, err := msg.Text()
	if err != nil {
		utils.Warn("router: dropping error message", map[string]any{"peer": peer, "error": err.Error()})
		return fmt.Errorf("router: %w", err)
	}
	r.bus.Publish(eventbus.Message(FromError, text))
	return nil
}

// handlePlacePrice runs an offer against the local store.
// Accepted offers are broadcast; rejections go back to the offering peer only.
func (r *CommandRouter) handlePlacePrice(peer string, msg protocol.SwarmMessage) error {
	if peer == r.localID {
		r.publishError(biddingerrors.ErrSelfBidNotAllowed)
		return fmt.Errorf("router: %w", biddingerrors.ErrSelfBidNotAllowed)
	}

	offer, err := msg.PlacePrice()
	if err != nil {
		utils.Warn("router: dropping offer", map[string]any{"peer": peer, "error": err.Error()})
		if sendErr := r.reportRejection(peer, err); sendErr != nil {
			return sendErr
		}
		return fmt.Errorf("router: %w", err)
	}

	summary, err := r.bids.PlacePrice(peer, offer.ItemID, string(offer.Price))
	if err != nil {
		utils.Info("router: offer rejected", map[string]any{
			"peer":    peer,
			"item_id": offer.ItemID,
			"price":   string(offer.Price),
			"error":   err.Error(),
		})
		return r.reportRejection(peer, err)
	}

	utils.Info("router: offer accepted", map[string]any{"peer": peer, "item_id": offer.ItemID, "price": string(offer.Price)})
	r.sendMessageForAll(FromAll, summary)
	return nil
}

// reportRejection tells the offering peer why its offer was not applied
func (r *CommandRouter) reportRejection(peer string, reason error) error {
	if err := r.transport.Unicast(peer, protocol.CmdError, Describe(reason)); err != nil {
		utils.Warn("router: could not report rejected offer", map[string]any{"peer": peer, "error": err.Error()})
		return fmt.Errorf("router: report rejection: %w", err)
	}
	return nil
}

// PlacePrice sends an offer to the seller of itemID
func (r *CommandRouter) PlacePrice(sellerID, itemID, price string) error {
	if sellerID == "" || itemID == "" || strings.TrimSpace(price) == "" {
		r.bus.Publish(eventbus.Message(FromError, invalidOfferMessage))
		return fmt.Errorf("router: %w - seller, item and price are required", biddingerrors.ErrInvalidInput)
	}
	if sellerID == r.localID {
		r.publishError(biddingerrors.ErrSelfBidNotAllowed)
		return fmt.Errorf("router: %w", biddingerrors.ErrSelfBidNotAllowed)
	}

	payload := protocol.PlacePricePayload{SellerID: sellerID, ItemID: itemID, Price: protocol.PriceInput(price)}
	if err := r.transport.Unicast(sellerID, protocol.CmdPeerPlacePrice, payload); err != nil {
		r.publishError(err)
		return fmt.Errorf("router: place price: %w", err)
	}
	return nil
}

// CreateBid opens an auction owned by the local peer and announces it
func (r *CommandRouter) CreateBid(itemID, price string) (string, error) {
	summary, err := r.bids.CreateBid(r.localID, itemID, price)
	if err != nil {
		r.publishError(err)
		return "", fmt.Errorf("router: create bid: %w", err)
	}
	r.AnnounceBid(summary)
	return summary, nil
}

// CloseBid closes a locally owned auction and announces the winner
func (r *CommandRouter) CloseBid(itemID string) (string, error) {
	summary, err := r.bids.CloseBid(r.localID, itemID)
	if err != nil {
		r.publishError(err)
		return "", fmt.Errorf("router: close bid: %w", err)
	}
	r.AnnounceBid(summary)
	return summary, nil
}

// AnnounceBid broadcasts a bid update and shows it locally
func (r *CommandRouter) AnnounceBid(summary string) {
	r.sendMessageForAll(FromAll, summary)
}

// PeerCountChanged publishes the current number of connected peers
func (r *CommandRouter) PeerCountChanged(n int) {
	r.bus.Publish(eventbus.Notification{Kind: eventbus.UpdatePeerCount, PeerCount: n})
}

func (r *CommandRouter) sendMessageForAll(from, message string) {
	if err := r.transport.Broadcast(protocol.CmdSendMessageLocally, message); err != nil {
		utils.Error("router: broadcast failed", map[string]any{"error": err.Error()})
	}
	r.bus.Publish(eventbus.Message(from, message))
}

func (r *CommandRouter) publishError(err error) {
	r.bus.Publish(eventbus.Message(FromError, Describe(err)))
}

// Describe returns the user-facing text of err without internal wrapping
func Describe(err error) string {
	for _, known := range []error{
		biddingerrors.ErrInvalidPrice,
		biddingerrors.ErrItemAlreadyExists,
		biddingerrors.ErrInvalidInput,
		biddingerrors.ErrNotOwner,
		biddingerrors.ErrSelfBidNotAllowed,
		biddingerrors.ErrItemNotFound,
		biddingerrors.ErrBidClosed,
		biddingerrors.ErrPriceTooLow,
		biddingerrors.ErrPeerNotFound,
		biddingerrors.ErrMalformedMessage,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
