package session

import (
	"context"
	"encoding/hex"
	"fmt"
	bidding "peer-bidding/internal/biddingService"
	"peer-bidding/internal/biddingerrors"
	"peer-bidding/internal/eventbus"
	"peer-bidding/internal/models"
	"peer-bidding/internal/overlay"
	"peer-bidding/internal/repository"
	"peer-bidding/internal/router"
	"peer-bidding/internal/transport"
	"peer-bidding/utils"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// DefaultRoomSeed is hashed into the topic of the default room
const DefaultRoomSeed = "%$#__defaultbidingroom__#@#"

// RoomInfo describes the room this peer participates in
type RoomInfo struct {
	Identity string      `json:"identity"`
	Topic    string      `json:"topic,omitempty"`
	Role     models.Role `json:"role,omitempty"`
	Peers    int         `json:"peers"`
	Joined   bool        `json:"joined"`
}

// Session owns one peer's bid store and processes every network message and
// local intent on a single goroutine, in arrival order.
type Session struct {
	net      overlay.Network
	bids     *bidding.BiddingService
	router   *router.CommandRouter
	bus      *eventbus.Bus
	roomSeed string
	inbox    *mailbox

	mu   sync.RWMutex
	room RoomInfo
}

// New wires a session over net. Call Run before issuing intents.
func New(net overlay.Network, bus *eventbus.Bus, roomSeed string) *Session {
	if roomSeed == "" {
		roomSeed = DefaultRoomSeed
	}
	bids := bidding.NewBiddingService(repository.NewMemoryRepo())
	s := &Session{
		net:      net,
		bids:     bids,
		router:   router.New(net.LocalID(), bids, transport.NewFacade(net), bus),
		bus:      bus,
		roomSeed: roomSeed,
		inbox:    newMailbox(),
		room:     RoomInfo{Identity: net.LocalID()},
	}
	net.SetHandler(s)
	return s
}

// Run processes queued work until ctx is done
func (s *Session) Run(ctx context.Context) error {
	utils.Info("session: started", map[string]any{"identity": s.net.LocalID()})
	for {
		select {
		case <-ctx.Done():
			utils.Info("session: stopped", map[string]any{"identity": s.net.LocalID()})
			return nil
		case <-s.inbox.ready():
			for _, task := range s.inbox.drain() {
				task()
			}
		}
	}
}

// do runs fn on the session goroutine and waits for it to finish
func (s *Session) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	s.inbox.push(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LocalID is this peer's identity
func (s *Session) LocalID() string { return s.net.LocalID() }

// Room returns the current room state
func (s *Session) Room() RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room
}

// CreateRoom joins the default room
func (s *Session) CreateRoom(ctx context.Context) (RoomInfo, error) {
	return s.JoinRoom(ctx, DefaultTopic(s.roomSeed))
}

// JoinRoom joins topic and decides the local role: the first peer in a room sells
func (s *Session) JoinRoom(ctx context.Context, topic string) (RoomInfo, error) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if _, err := hex.DecodeString(topic); err != nil || topic == "" {
		return RoomInfo{}, fmt.Errorf("session: %w - topic must be a hex string", biddingerrors.ErrInvalidTopic)
	}

	if err := s.do(ctx, func() {
		s.bus.Publish(eventbus.Notification{Kind: eventbus.ShowLoading})
	}); err != nil {
		return RoomInfo{}, err
	}

	peers, err := s.net.Join(ctx, topic)
	if err != nil {
		return RoomInfo{}, fmt.Errorf("session: join %s: %w", topic, err)
	}

	var room RoomInfo
	err = s.do(ctx, func() {
		role, kind := models.RoleBuyer, eventbus.ShowBuyerUI
		if len(peers) == 0 {
			role, kind = models.RoleSeller, eventbus.ShowSellerUI
		}

		s.mu.Lock()
		s.room.Topic = topic
		s.room.Role = role
		s.room.Joined = true
		s.mu.Unlock()

		s.bus.Publish(eventbus.Notification{Kind: eventbus.ShowBidRoom, Topic: topic})
		s.bus.Publish(eventbus.Notification{Kind: kind})
		s.peerCountChanged()
		room = s.Room()

		utils.Info("session: joined room", map[string]any{"topic": topic, "role": role, "peers": len(peers)})
	})
	return room, err
}

// CreateBid lists itemID for sale by this peer
func (s *Session) CreateBid(ctx context.Context, itemID, price string) (string, error) {
	var summary string
	var err error
	if doErr := s.do(ctx, func() {
		if err = s.requireRoom(); err == nil {
			summary, err = s.router.CreateBid(itemID, price)
		}
	}); doErr != nil {
		return "", doErr
	}
	return summary, err
}

// CloseBid ends the auction for a locally owned item
func (s *Session) CloseBid(ctx context.Context, itemID string) (string, error) {
	var summary string
	var err error
	if doErr := s.do(ctx, func() {
		if err = s.requireRoom(); err == nil {
			summary, err = s.router.CloseBid(itemID)
		}
	}); doErr != nil {
		return "", doErr
	}
	return summary, err
}

// PlacePrice offers price for itemID to its seller
func (s *Session) PlacePrice(ctx context.Context, sellerID, itemID, price string) error {
	var err error
	if doErr := s.do(ctx, func() {
		if err = s.requireRoom(); err == nil {
			err = s.router.PlacePrice(sellerID, itemID, price)
		}
	}); doErr != nil {
		return doErr
	}
	return err
}

// Announce broadcasts a free-form bid update
func (s *Session) Announce(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("session: %w - empty message", biddingerrors.ErrInvalidInput)
	}
	var err error
	if doErr := s.do(ctx, func() {
		if err = s.requireRoom(); err == nil {
			s.router.AnnounceBid(message)
		}
	}); doErr != nil {
		return doErr
	}
	return err
}

// Bids returns the records owned by this peer
func (s *Session) Bids() []models.BidRecord {
	return s.bids.ListBids()
}

// Bid returns one record owned by this peer
func (s *Session) Bid(itemID string) (models.BidRecord, error) {
	return s.bids.GetBid(itemID)
}

// Close leaves the overlay
func (s *Session) Close() error {
	return s.net.Close()
}

func (s *Session) HandleConnect(peer string) {
	s.inbox.push(func() {
		utils.Debug("session: peer connected", map[string]any{"peer": peer})
		s.peerCountChanged()
	})
}

func (s *Session) HandleData(peer string, data []byte) {
	s.inbox.push(func() {
		if err := s.router.HandleMessage(peer, data); err != nil {
			utils.Debug("session: message not applied", map[string]any{"peer": peer, "error": err.Error()})
		}
	})
}

func (s *Session) HandleDisconnect(peer string, err error) {
	s.inbox.push(func() {
		fields := map[string]any{"peer": peer}
		if err != nil {
			fields["error"] = err.Error()
			utils.Warn("session: connection error", fields)
		} else {
			utils.Debug("session: peer disconnected", fields)
		}
		s.peerCountChanged()
	})
}

// requireRoom rejects intents issued before any room was joined
func (s *Session) requireRoom() error {
	if s.Room().Joined {
		return nil
	}
	s.bus.Publish(eventbus.Message(router.FromError, biddingerrors.ErrNotJoined.Error()))
	return fmt.Errorf("session: %w", biddingerrors.ErrNotJoined)
}

func (s *Session) peerCountChanged() {
	n := len(s.net.Peers())
	s.mu.Lock()
	s.room.Peers = n
	s.mu.Unlock()
	s.router.PeerCountChanged(n)
}

// DefaultTopic derives the hex topic of a room from its seed
func DefaultTopic(seed string) string {
	sum := blake2b.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
