package models

import "github.com/shopspring/decimal"

// BidStatus is the lifecycle state of a bid record
type BidStatus string

const (
	StatusOpen   BidStatus = "open"
	StatusClosed BidStatus = "closed"
)

// BidRecord is the authoritative state of one item under auction
type BidRecord struct {
	ItemID         string          `json:"item_id"`
	OriginalOwner  string          `json:"original_owner"`
	PotentialOwner string          `json:"potential_owner,omitempty"` // empty until a valid price is placed
	Price          decimal.Decimal `json:"price"`
	Status         BidStatus       `json:"status"`
}

// IsClosed reports whether the record reached its terminal state
func (b BidRecord) IsClosed() bool {
	return b.Status == StatusClosed
}

// HasWinner reports whether any buyer placed a valid price
func (b BidRecord) HasWinner() bool {
	return b.PotentialOwner != ""
}

// Role is the part a peer plays in a room
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)
