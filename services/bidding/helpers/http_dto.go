package helpers

import "peer-bidding/internal/protocol"

// Request/Response DTOs
type JoinRoomRequest struct {
	Topic string `json:"topic" binding:"required"`
}

type CreateBidRequest struct {
	ItemID string              `json:"item_id" binding:"required"`
	Price  protocol.PriceInput `json:"price" binding:"required"`
}

type PlacePriceRequest struct {
	SellerID string              `json:"seller_id" binding:"required"`
	ItemID   string              `json:"item_id" binding:"required"`
	Price    protocol.PriceInput `json:"price" binding:"required"`
}

type AnnounceRequest struct {
	Message string `json:"message" binding:"required"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type BidResponse struct {
	ItemID         string `json:"item_id"`
	OriginalOwner  string `json:"original_owner"`
	PotentialOwner string `json:"potential_owner,omitempty"`
	Price          string `json:"price"`
	Status         string `json:"status"`
}
