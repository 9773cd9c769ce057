package overlay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"peer-bidding/internal/biddingerrors"
	"peer-bidding/utils"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 5 * time.Second
	writeTimeout            = 10 * time.Second
)

// hello is the first frame sent in both directions on a new connection
type hello struct {
	ID    string `json:"id"`
	Topic string `json:"topic"`
}

// SwarmConfig configures a websocket Swarm
type SwarmConfig struct {
	LocalID          string
	Bootstrap        []string // host:port or ws:// URLs of peers to dial on Join
	HandshakeTimeout time.Duration
}

// Swarm is a websocket mesh: it serves inbound peers over HTTP and dials bootstrap peers on Join
type Swarm struct {
	localID          string
	bootstrap        []string
	handshakeTimeout time.Duration
	dialer           *websocket.Dialer
	upgrader         websocket.Upgrader

	mu      sync.RWMutex
	handler Handler
	topics  map[string]struct{}
	conns   map[string]*peerConn
	closed  bool
}

type peerConn struct {
	id       string
	topic    string
	outbound bool
	ws       *websocket.Conn
	writeMu  sync.Mutex
}

var _ Network = (*Swarm)(nil)

// NewSwarm creates a Swarm; mount it as an http.Handler to accept inbound peers
func NewSwarm(cfg SwarmConfig) *Swarm {
	timeout := cfg.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}
	return &Swarm{
		localID:          cfg.LocalID,
		bootstrap:        append([]string(nil), cfg.Bootstrap...),
		handshakeTimeout: timeout,
		dialer:           &websocket.Dialer{HandshakeTimeout: timeout},
		upgrader: websocket.Upgrader{
			HandshakeTimeout: timeout,
			CheckOrigin:      func(*http.Request) bool { return true },
		},
		handler: nopHandler{},
		topics:  make(map[string]struct{}),
		conns:   make(map[string]*peerConn),
	}
}

func (s *Swarm) LocalID() string { return s.localID }

func (s *Swarm) SetHandler(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

func (s *Swarm) currentHandler() Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handler
}

func (s *Swarm) joined(topic string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.topics[topic]
	return ok
}

// Join starts accepting peers for topic and dials every bootstrap peer.
// Unreachable peers are logged and skipped.
func (s *Swarm) Join(ctx context.Context, topic string) ([]string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errors.New("overlay: swarm closed")
	}
	s.topics[topic] = struct{}{}
	s.mu.Unlock()

	for _, addr := range s.bootstrap {
		if err := ctx.Err(); err != nil {
			return s.Peers(), err
		}
		if err := s.dial(ctx, addr, topic); err != nil {
			utils.Warn("overlay: bootstrap peer unreachable", map[string]any{
				"addr":  addr,
				"topic": topic,
				"error": err.Error(),
			})
		}
	}
	return s.Peers(), nil
}

func (s *Swarm) dial(ctx context.Context, addr, topic string) error {
	ws, _, err := s.dialer.DialContext(ctx, peerURL(addr), nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	_ = ws.SetReadDeadline(time.Now().Add(s.handshakeTimeout))
	if err := ws.WriteJSON(hello{ID: s.localID, Topic: topic}); err != nil {
		ws.Close()
		return fmt.Errorf("send hello: %w", err)
	}
	var reply hello
	if err := ws.ReadJSON(&reply); err != nil {
		ws.Close()
		return fmt.Errorf("read hello: %w", err)
	}
	if reply.Topic != topic || reply.ID == "" || reply.ID == s.localID {
		ws.Close()
		return fmt.Errorf("unexpected hello from %q on topic %q", reply.ID, reply.Topic)
	}
	_ = ws.SetReadDeadline(time.Time{})

	s.attach(&peerConn{id: reply.ID, topic: topic, outbound: true, ws: ws})
	return nil
}

// ServeHTTP upgrades an inbound peer connection and performs the hello exchange
func (s *Swarm) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("overlay: upgrade failed", map[string]any{"remote": r.RemoteAddr, "error": err.Error()})
		return
	}

	_ = ws.SetReadDeadline(time.Now().Add(s.handshakeTimeout))
	var h hello
	if err := ws.ReadJSON(&h); err != nil {
		utils.Warn("overlay: bad hello", map[string]any{"remote": r.RemoteAddr, "error": err.Error()})
		ws.Close()
		return
	}
	if h.ID == "" || h.ID == s.localID || !s.joined(h.Topic) {
		utils.Warn("overlay: rejected peer", map[string]any{"peer": h.ID, "topic": h.Topic})
		_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "topic not joined"))
		ws.Close()
		return
	}
	if err := ws.WriteJSON(hello{ID: s.localID, Topic: h.Topic}); err != nil {
		ws.Close()
		return
	}
	_ = ws.SetReadDeadline(time.Time{})

	s.attach(&peerConn{id: h.ID, topic: h.Topic, ws: ws})
}

// attach registers pc and starts its reader.
// When two connections link the same pair, both ends keep the one dialed by the smaller identity.
func (s *Swarm) attach(pc *peerConn) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		pc.ws.Close()
		return
	}
	existing, dup := s.conns[pc.id]
	if dup && !(s.preferred(pc) && !s.preferred(existing)) {
		s.mu.Unlock()
		pc.ws.Close()
		return
	}
	s.conns[pc.id] = pc
	handler := s.handler
	s.mu.Unlock()

	if dup {
		existing.ws.Close()
	}
	go s.readLoop(pc)
	if !dup {
		utils.Info("overlay: peer connected", map[string]any{"peer": pc.id, "topic": pc.topic, "outbound": pc.outbound})
		handler.HandleConnect(pc.id)
	}
}

func (s *Swarm) preferred(pc *peerConn) bool {
	initiator := pc.id
	if pc.outbound {
		initiator = s.localID
	}
	lowest := s.localID
	if pc.id < lowest {
		lowest = pc.id
	}
	return initiator == lowest
}

func (s *Swarm) readLoop(pc *peerConn) {
	for {
		_, data, err := pc.ws.ReadMessage()
		if err != nil {
			if s.detach(pc) {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					err = nil
				}
				utils.Info("overlay: peer disconnected", map[string]any{"peer": pc.id})
				s.currentHandler().HandleDisconnect(pc.id, err)
			}
			return
		}
		s.currentHandler().HandleData(pc.id, data)
	}
}

// detach removes pc if it is still the registered connection for its peer
func (s *Swarm) detach(pc *peerConn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conns[pc.id] != pc {
		return false
	}
	delete(s.conns, pc.id)
	pc.ws.Close()
	return true
}

// Write sends one text frame to peer
func (s *Swarm) Write(peer string, data []byte) error {
	s.mu.RLock()
	pc, ok := s.conns[peer]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("overlay: write to %s: %w", peer, biddingerrors.ErrPeerNotFound)
	}

	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()
	_ = pc.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := pc.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("overlay: write to %s: %w", peer, err)
	}
	return nil
}

func (s *Swarm) Peers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	peers := make([]string, 0, len(s.conns))
	for id := range s.conns {
		peers = append(peers, id)
	}
	sort.Strings(peers)
	return peers
}

// Close drops every connection; the swarm cannot be joined again
func (s *Swarm) Close() error {
	s.mu.Lock()
	s.closed = true
	conns := s.conns
	s.conns = make(map[string]*peerConn)
	s.mu.Unlock()

	for _, pc := range conns {
		pc.writeMu.Lock()
		_ = pc.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		pc.writeMu.Unlock()
		pc.ws.Close()
	}
	return nil
}

// peerURL turns a bootstrap entry into a websocket URL
func peerURL(addr string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	return "ws://" + strings.TrimSuffix(addr, "/") + "/swarm"
}
