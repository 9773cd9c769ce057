package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"peer-bidding/internal/eventbus"
	model "peer-bidding/internal/models"
	"peer-bidding/internal/session"
	"peer-bidding/services/bidding/helpers"
	"peer-bidding/utils"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

const (
	requestTimeout = 10 * time.Second
	eventBuffer    = 64
)

type SessionInterface interface {
	CreateRoom(ctx context.Context) (session.RoomInfo, error)
	JoinRoom(ctx context.Context, topic string) (session.RoomInfo, error)
	Room() session.RoomInfo
	CreateBid(ctx context.Context, itemID, price string) (string, error)
	CloseBid(ctx context.Context, itemID string) (string, error)
	PlacePrice(ctx context.Context, sellerID, itemID, price string) error
	Announce(ctx context.Context, message string) error
	Bids() []model.BidRecord
	Bid(itemID string) (model.BidRecord, error)
}

// HistoryReader exposes the notifications already published on the bus
type HistoryReader interface {
	All() []eventbus.Notification
	Messages() []eventbus.Notification
}

// EventFeed delivers notifications as they are published
type EventFeed interface {
	Subscribe(h eventbus.Handler) (cancel func())
}

type BiddingHandler struct {
	session SessionInterface
	history HistoryReader
	feed    EventFeed
}

func NewBiddingHandler(session SessionInterface, history HistoryReader, feed EventFeed) *BiddingHandler {
	return &BiddingHandler{session: session, history: history, feed: feed}
}

func (h *BiddingHandler) fail(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// CreateRoomHandler handles POST /rooms
func (h *BiddingHandler) CreateRoomHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	room, err := h.session.CreateRoom(ctx)
	if err != nil {
		h.fail(c, "CreateRoomHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, room, "room created successfully")
	helpers.LogSuccess("CreateRoomHandler", "room created successfully", map[string]any{
		"topic": room.Topic,
		"role":  room.Role,
	})
}

// JoinRoomHandler handles POST /rooms/join
func (h *BiddingHandler) JoinRoomHandler(c *gin.Context) {
	var req helpers.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "JoinRoomHandler", err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	room, err := h.session.JoinRoom(ctx, req.Topic)
	if err != nil {
		h.fail(c, "JoinRoomHandler", err, map[string]any{"topic": req.Topic})
		return
	}

	utils.JSONResponse(c, http.StatusOK, room, "room joined successfully")
	helpers.LogSuccess("JoinRoomHandler", "room joined successfully", map[string]any{
		"topic": room.Topic,
		"role":  room.Role,
		"peers": room.Peers,
	})
}

// GetRoomHandler handles GET /room
func (h *BiddingHandler) GetRoomHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.session.Room(), "room retrieved successfully")
}

// CreateBidHandler handles POST /bids
func (h *BiddingHandler) CreateBidHandler(c *gin.Context) {
	var req helpers.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateBidHandler", err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.session.CreateBid(ctx, req.ItemID, string(req.Price))
	if err != nil {
		h.fail(c, "CreateBidHandler", err, map[string]any{"item_id": req.ItemID, "price": string(req.Price)})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.SummaryResponse{Summary: summary}, "bid created successfully")
	helpers.LogSuccess("CreateBidHandler", "bid created successfully", map[string]any{
		"item_id": req.ItemID,
		"price":   string(req.Price),
	})
}

// CloseBidHandler handles POST /bids/:item_id/close
func (h *BiddingHandler) CloseBidHandler(c *gin.Context) {
	itemID := c.Param("item_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.session.CloseBid(ctx, itemID)
	if err != nil {
		h.fail(c, "CloseBidHandler", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.SummaryResponse{Summary: summary}, "bid closed successfully")
	helpers.LogSuccess("CloseBidHandler", "bid closed successfully", map[string]any{"item_id": itemID})
}

// ListBidsHandler handles GET /bids
func (h *BiddingHandler) ListBidsHandler(c *gin.Context) {
	records := h.session.Bids()

	resp := make([]helpers.BidResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, helpers.ToBidResponse(record))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("ListBidsHandler", "bids retrieved successfully", map[string]any{"count": len(resp)})
}

// GetBidHandler handles GET /bids/:item_id
func (h *BiddingHandler) GetBidHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	record, err := h.session.Bid(itemID)
	if err != nil {
		h.fail(c, "GetBidHandler", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(record), "bid retrieved successfully")
}

// PlacePriceHandler handles POST /offers
func (h *BiddingHandler) PlacePriceHandler(c *gin.Context) {
	var req helpers.PlacePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlacePriceHandler", err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.session.PlacePrice(ctx, req.SellerID, req.ItemID, string(req.Price)); err != nil {
		h.fail(c, "PlacePriceHandler", err, map[string]any{
			"seller_id": req.SellerID,
			"item_id":   req.ItemID,
			"price":     string(req.Price),
		})
		return
	}

	// the seller answers asynchronously over the event stream
	utils.JSONResponse(c, http.StatusAccepted, req, "price offer sent")
	helpers.LogSuccess("PlacePriceHandler", "price offer sent", map[string]any{
		"seller_id": req.SellerID,
		"item_id":   req.ItemID,
		"price":     string(req.Price),
	})
}

// AnnounceHandler handles POST /announcements
func (h *BiddingHandler) AnnounceHandler(c *gin.Context) {
	var req helpers.AnnounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AnnounceHandler", err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.session.Announce(ctx, req.Message); err != nil {
		h.fail(c, "AnnounceHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusAccepted, req, "announcement sent")
	helpers.LogSuccess("AnnounceHandler", "announcement sent", nil)
}

// MessagesHandler handles GET /messages
func (h *BiddingHandler) MessagesHandler(c *gin.Context) {
	messages := h.history.Messages()
	if messages == nil {
		messages = []eventbus.Notification{}
	}
	utils.JSONResponse(c, http.StatusOK, messages, "messages retrieved successfully")
}

// EventsHandler handles GET /events: replays history then streams live notifications
func (h *BiddingHandler) EventsHandler(c *gin.Context) {
	live := make(chan eventbus.Notification, eventBuffer)
	cancel := h.feed.Subscribe(func(n eventbus.Notification) {
		select {
		case live <- n:
		default:
			utils.Warn("EventsHandler: slow subscriber, notification dropped", map[string]any{"id": n.ID, "kind": n.Kind})
		}
	})
	defer cancel()

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	seen := make(map[string]struct{})
	for _, n := range h.history.All() {
		seen[n.ID] = struct{}{}
		h.writeEvent(c, n)
	}
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-live:
			if _, dup := seen[n.ID]; dup {
				continue
			}
			h.writeEvent(c, n)
			c.Writer.Flush()
		}
	}
}

func (h *BiddingHandler) writeEvent(c *gin.Context, n eventbus.Notification) {
	c.Render(-1, sse.Event{
		Id:    n.ID,
		Event: string(n.Kind),
		Data:  n,
	})
}
